package books

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// object holds the members of a JSON object keyed by their exact names.
// encoding/json folds case when decoding into structs, so lookups go
// through this instead.
type object map[string]json.RawMessage

// member returns the raw value stored under key. ok is false when the key
// is missing; a key present with a null value is reported as present.
func (o object) member(key string) (json.RawMessage, bool) {
	raw, ok := o[key]
	return raw, ok
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func decodeObject(raw json.RawMessage) (object, error) {
	if isNull(raw) {
		return nil, fmt.Errorf("expected object, got null")
	}
	var o object
	if err := json.Unmarshal(raw, &o); err != nil {
		return nil, err
	}
	return o, nil
}

func decodeString(raw json.RawMessage) (string, error) {
	if isNull(raw) {
		return "", fmt.Errorf("expected string, got null")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", err
	}
	return s, nil
}

func decodeArray(raw json.RawMessage) ([]json.RawMessage, error) {
	if isNull(raw) {
		return nil, fmt.Errorf("expected array, got null")
	}
	var a []json.RawMessage
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, err
	}
	return a, nil
}

// ExtractBooks maps a search response body to books.
//
// A blank body yields a nil slice. Any other body yields a non-nil slice
// holding every book extracted before the first structural problem; the
// problem itself is returned as an ErrParse error.
func ExtractBooks(body string) ([]*Book, error) {
	if strings.TrimSpace(body) == "" {
		return nil, nil
	}

	books := make([]*Book, 0)

	doc, err := decodeObject(json.RawMessage(body))
	if err != nil {
		return books, fmt.Errorf("%w: %v", ErrParse, err)
	}
	rawItems, ok := doc.member("items")
	if !ok {
		return books, fmt.Errorf("%w: no items array", ErrParse)
	}
	items, err := decodeArray(rawItems)
	if err != nil {
		return books, fmt.Errorf("%w: items: %v", ErrParse, err)
	}

	for i, raw := range items {
		book, err := extractBook(raw)
		if err != nil {
			return books, fmt.Errorf("%w: item %d: %v", ErrParse, i, err)
		}
		books = append(books, book)
	}

	return books, nil
}

func extractBook(raw json.RawMessage) (*Book, error) {
	item, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}
	rawInfo, ok := item.member("volumeInfo")
	if !ok {
		return nil, fmt.Errorf("missing volumeInfo")
	}
	info, err := decodeObject(rawInfo)
	if err != nil {
		return nil, fmt.Errorf("volumeInfo: %v", err)
	}

	rawTitle, ok := info.member("title")
	if !ok {
		return nil, fmt.Errorf("missing title")
	}
	title, err := decodeString(rawTitle)
	if err != nil {
		return nil, fmt.Errorf("title: %v", err)
	}

	book := &Book{Title: title}

	rawAuthors, ok := info.member("authors")
	if !ok {
		return book, nil
	}
	authors, err := decodeArray(rawAuthors)
	if err != nil {
		return nil, fmt.Errorf("authors: %v", err)
	}

	var sb strings.Builder
	for j, rawAuthor := range authors {
		author, err := decodeString(rawAuthor)
		if err != nil {
			return nil, fmt.Errorf("author %d: %v", j, err)
		}
		sb.WriteString(author)
		sb.WriteByte('\n')
	}
	book.Authors = sb.String()

	return book, nil
}
