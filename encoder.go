package portraitgen

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// ErrInvalidDataURI is returned when a string is not a base64 data URI.
var ErrInvalidDataURI = errors.New("invalid data URI")

const (
	dataURIScheme = "data:"
	base64Marker  = ";base64,"
)

// EncodedImage is a transfer-ready image: base64 payload plus media type.
type EncodedImage struct {
	Data      string
	MediaType string
}

// InputImage decodes the payload for a provider call.
func (e EncodedImage) InputImage() (InputImage, error) {
	data, err := base64.StdEncoding.DecodeString(e.Data)
	if err != nil {
		return InputImage{}, fmt.Errorf("invalid base64: %w", err)
	}
	return InputImage{
		Data:     data,
		MIMEType: e.MediaType,
	}, nil
}

// EncodeImage reads all of r and base64 encodes it.
//
// Content that is already a textual data URI is unwrapped: its prefix is stripped and,
// if mediaType is empty, its media type is used. Otherwise an empty mediaType is
// sniffed from the content.
func EncodeImage(ctx context.Context, r io.Reader, mediaType string) (EncodedImage, error) {
	if err := ctx.Err(); err != nil {
		return EncodedImage{}, err
	}
	if r == nil {
		return EncodedImage{}, ErrEmptyImageData
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return EncodedImage{}, fmt.Errorf("failed to read image: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return EncodedImage{}, err
	}

	if bytes.HasPrefix(raw, []byte(dataURIScheme)) {
		uriType, payload, err := ParseDataURI(string(raw))
		if err != nil {
			return EncodedImage{}, err
		}
		if mediaType == "" {
			mediaType = uriType
		}
		return EncodedImage{Data: payload, MediaType: mediaType}, nil
	}

	if mediaType == "" {
		mediaType = sniffMIMEType(raw)
	}

	return EncodedImage{
		Data:      encodeBase64(raw),
		MediaType: mediaType,
	}, nil
}

// EncodeFile opens path and encodes its content, taking the media type from the
// extension or, when the extension is unknown, from the content.
func EncodeFile(ctx context.Context, path string) (EncodedImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return EncodedImage{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	return EncodeImage(ctx, f, MIMETypeFromExt(path))
}

// StripDataURIPrefix removes a leading "data:<type>;base64," from s.
// Strings without that prefix are returned unchanged.
func StripDataURIPrefix(s string) string {
	if !strings.HasPrefix(s, dataURIScheme) {
		return s
	}
	if i := strings.Index(s, base64Marker); i >= 0 {
		return s[i+len(base64Marker):]
	}
	return s
}

// DataURI formats a media type and base64 payload as a data URI.
func DataURI(mediaType, b64 string) string {
	return dataURIScheme + mediaType + base64Marker + b64
}

// ParseDataURI splits a base64 data URI into media type and payload.
func ParseDataURI(uri string) (mediaType, payload string, err error) {
	uri = strings.TrimSpace(uri)
	if !strings.HasPrefix(uri, dataURIScheme) {
		return "", "", fmt.Errorf("%w: missing %q scheme", ErrInvalidDataURI, dataURIScheme)
	}
	i := strings.Index(uri, base64Marker)
	if i < 0 {
		return "", "", fmt.Errorf("%w: not base64 encoded", ErrInvalidDataURI)
	}
	return uri[len(dataURIScheme):i], uri[i+len(base64Marker):], nil
}

func encodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// sniffMIMEType reports the content type of data, without parameters.
func sniffMIMEType(data []byte) string {
	mt := http.DetectContentType(data)
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	return mt
}
