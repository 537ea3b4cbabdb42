package domain

// PassageMetadata is denormalised alongside each indexed vector so an
// answer context can be rebuilt without a second lookup.
type PassageMetadata struct {
	Text         string       `json:"text"`
	DocumentID   string       `json:"documentId"`
	DocumentType DocumentType `json:"documentType,omitempty"`
}

// PassageVector is one chunk's embedding as written to the vector index.
// The ID is "{documentID}_{chunkIndex}".
type PassageVector struct {
	ID       string          `json:"id"`
	Values   []float32       `json:"values"`
	Metadata PassageMetadata `json:"metadata"`
}

// PassageMatch is one nearest-neighbour hit from the vector index,
// ordered by descending relevance as the index provides it.
type PassageMatch struct {
	ID       string          `json:"id"`
	Score    float64         `json:"score"`
	Metadata PassageMetadata `json:"metadata"`
}

// RankedDocument is one semantic-search result resolved back to its
// document's display fields.
type RankedDocument struct {
	DocumentID   string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	DocumentType DocumentType `json:"documentType"`
	Score        float64      `json:"score"`

	// LookupError is set when the backing document could not be
	// resolved (e.g. deleted between ranking and lookup). The rest of
	// the result set is unaffected.
	LookupError string `json:"lookupError,omitempty"`
}

// SearchTopK is the fixed result count for semantic search and retrieval.
const SearchTopK = 5
