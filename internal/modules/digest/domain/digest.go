package domain

// Digest is the text sent to recipients and where it came from.
type Digest struct {
	Text   string       `json:"text"`
	Source DigestSource `json:"source"`
}
