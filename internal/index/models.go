// Package index stores documents with embedding vectors and supports
// nearest-neighbor search. The default backend is a brute-force flat index
// with snapshot persistence; a Qdrant-backed implementation is available
// for deployments with an external vector database.
package index

// DocType categorizes corpus documents.
type DocType string

const (
	TypeScheme  DocType = "scheme"
	TypeLegal   DocType = "legal"
	TypeFunding DocType = "funding"
	TypeMarket  DocType = "market"
)

// Types lists all document types in canonical order.
var Types = []DocType{TypeScheme, TypeLegal, TypeFunding, TypeMarket}

// Valid reports whether t is a known document type.
func (t DocType) Valid() bool {
	switch t {
	case TypeScheme, TypeLegal, TypeFunding, TypeMarket:
		return true
	}
	return false
}

// Document is a corpus entry. The embedding is attached only transiently
// during ingestion; stored documents never carry it (vectors live in the
// index's own store).
type Document struct {
	Text     string         `json:"text"`
	Type     DocType        `json:"type"`
	Metadata map[string]any `json:"metadata,omitempty"`

	Embedding []float32 `json:"-"`
}

// Hit is a single search result: a stored document and its squared
// Euclidean distance from the query vector.
type Hit struct {
	Document Document
	Distance float64
}

// Stats describes index contents.
type Stats struct {
	Documents int             `json:"total_documents"`
	Vectors   int             `json:"index_size"`
	Dimension int             `json:"dimension"`
	ByType    map[DocType]int `json:"document_types"`
}
