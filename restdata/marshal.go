// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restdata

import (
	"io"
	"mime"

	"github.com/ugorji/go/codec"
)

// IsJSON determines whether a (parsed, parameter-free) media type is
// one of the JSON types this package reads and writes.
func IsJSON(mediaType string) bool {
	switch mediaType {
	case HALMediaType, JSONMediaType, "text/json":
		return true
	}
	return false
}

// Decode tries to decode a restdata object from a reader, such as an
// HTTP request or response.  out must be a pointer type.
func Decode(contentType string, r io.Reader, out interface{}) error {
	if contentType == "" {
		// RFC 7231 section 3.1.1.5
		contentType = "application/octet-stream"
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ErrBadRequest{Err: err}
	}
	if !IsJSON(mediaType) {
		return ErrUnsupportedMediaType{Type: mediaType}
	}

	decoder := codec.NewDecoder(r, &codec.JsonHandle{})
	err = decoder.Decode(out)
	if err != nil {
		return ErrBadRequest{Err: err}
	}
	return nil
}

// Encode writes a restdata object to a writer as JSON.
func Encode(w io.Writer, in interface{}) error {
	encoder := codec.NewEncoder(w, &codec.JsonHandle{})
	return encoder.Encode(in)
}
