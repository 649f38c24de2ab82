// Package constraints provides type constraints shared by the parsing packages.
package constraints

// Byteseq represents a generic UTF-8 byte string, the input accepted by the parsers and codecs.
type Byteseq interface {
	~string | ~[]byte
}
