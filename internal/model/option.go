package model

// Option is a single entry in the shared option pool, as stored in MongoDB.
type Option struct {
	ID   string `json:"id,omitempty" bson:"_id,omitempty"`
	Text string `json:"text" bson:"text"`
}
