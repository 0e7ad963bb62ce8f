package codec

// ICodec is the interface for all value codecs
type ICodec interface {
	// Encode encodes a value of the store's value domain into a byte array
	// It returns the encoded byte array and an error if any
	Encode(v any) ([]byte, error)
	// Decode decodes a byte array produced by Encode
	// It returns the decoded value and an error if the data is malformed
	Decode(b []byte) (any, error)
}

// maxDepth limits the nesting of lists, records and tables
const maxDepth = 64
