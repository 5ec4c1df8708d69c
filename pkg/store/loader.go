package store

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knakk/rdf"
)

// Format identifies an RDF input syntax.
type Format int

const (
	FormatUnknown Format = iota
	FormatNTriples
	FormatTurtle
	FormatRDFXML
)

// ErrUnsupportedFormat is returned when no decoder exists for a format.
var ErrUnsupportedFormat = errors.New("unsupported RDF format")

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatNTriples:
		return "ntriples"
	case FormatTurtle:
		return "turtle"
	case FormatRDFXML:
		return "rdfxml"
	default:
		return "unknown"
	}
}

var extensionFormats = map[string]Format{
	".nt":       FormatNTriples,
	".ntriples": FormatNTriples,
	".ttl":      FormatTurtle,
	".turtle":   FormatTurtle,
	".n3":       FormatTurtle,
	".rdf":      FormatRDFXML,
	".owl":      FormatRDFXML,
	".xml":      FormatRDFXML,
}

// FormatFromExtension maps a file name to a format by its extension.
func FormatFromExtension(path string) Format {
	return extensionFormats[strings.ToLower(filepath.Ext(path))]
}

// SniffFormat guesses a format from the first bytes of a document. Turtle is
// a superset of N-Triples, so anything that is not XML falls back to Turtle.
func SniffFormat(head []byte) Format {
	trimmed := bytes.TrimLeft(bytes.TrimPrefix(head, []byte("\xef\xbb\xbf")), " \t\r\n")
	if len(trimmed) == 0 {
		return FormatUnknown
	}
	if bytes.HasPrefix(trimmed, []byte("<?xml")) || bytes.HasPrefix(trimmed, []byte("<rdf:RDF")) {
		return FormatRDFXML
	}
	return FormatTurtle
}

// ParseError reports a syntax error part way through a document. Triples
// decoded before the error are kept.
type ParseError struct {
	File   string
	Parsed int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("RDF parsing error in %s after %d triples: %v", e.File, e.Parsed, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load reads an RDF file into a new store, detecting its syntax from the
// extension or, failing that, the content. On a syntax error the returned
// store holds every triple decoded before the error, and the error is a
// *ParseError. Any other error returns a nil store.
func Load(path string) (*TripleStore, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	format := FormatFromExtension(path)
	if format == FormatUnknown {
		head, _ := reader.Peek(512)
		format = SniffFormat(head)
	}

	ts := NewTripleStore()
	if format == FormatUnknown {
		// Empty file.
		return ts, nil
	}

	parsed, err := Decode(reader, format, ts)
	if err != nil {
		if errors.Is(err, ErrUnsupportedFormat) {
			return nil, err
		}
		return ts, &ParseError{File: filepath.Base(path), Parsed: parsed, Err: err}
	}
	return ts, nil
}

// Decode reads triples from r into ts until EOF or the first error. It
// returns the number of triples decoded.
func Decode(r io.Reader, format Format, ts *TripleStore) (int, error) {
	rdfFormat, err := decoderFormat(format)
	if err != nil {
		return 0, err
	}

	decoder := rdf.NewTripleDecoder(r, rdfFormat)
	parsed := 0
	for {
		triple, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			return parsed, nil
		}
		if err != nil {
			return parsed, err
		}

		converted, err := tripleFromRDF(triple)
		if err != nil {
			return parsed, err
		}
		if err := ts.AddTriple(converted); err != nil {
			return parsed, err
		}
		parsed++
	}
}

func decoderFormat(format Format) (rdf.Format, error) {
	switch format {
	case FormatNTriples:
		return rdf.NTriples, nil
	case FormatTurtle:
		return rdf.Turtle, nil
	case FormatRDFXML:
		return rdf.RDFXML, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func tripleFromRDF(triple rdf.Triple) (Triple, error) {
	subject, err := termFromRDF(triple.Subj)
	if err != nil {
		return Triple{}, err
	}
	predicate, err := termFromRDF(triple.Pred)
	if err != nil {
		return Triple{}, err
	}
	object, err := termFromRDF(triple.Obj)
	if err != nil {
		return Triple{}, err
	}
	return NewTriple(subject, predicate, object), nil
}

func termFromRDF(term rdf.Term) (Term, error) {
	switch value := term.(type) {
	case rdf.IRI:
		return NewIRI(value.String()), nil
	case rdf.Blank:
		return NewBlank(value.String()), nil
	case rdf.Literal:
		if language := value.Lang(); language != "" {
			return NewLangLiteral(value.String(), language), nil
		}
		return NewTypedLiteral(value.String(), value.DataType.String()), nil
	default:
		return Term{}, fmt.Errorf("unsupported term type %T", term)
	}
}
