package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/burgerboots/catalog/internal/catalog"
	"github.com/burgerboots/catalog/internal/media"
	"github.com/gin-gonic/gin"
)

// multipart parts beyond the file itself
const formOverhead = 1 << 20

var errBadBody = errors.New("invalid request body")

// form is the submitted field set of a create or update request, read from a
// multipart form, a urlencoded form or a JSON object.
type form struct {
	values  map[string][]string
	file    *media.File
	cleanup func()
	errs    catalog.ValidationError
}

// readForm parses the request body. The body is capped at maxBytes plus form overhead;
// the file itself is capped again by the media store.
func readForm(c *gin.Context, maxBytes int64, fileField string) (*form, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+formOverhead)
	f := &form{values: map[string][]string{}, cleanup: func() {}}

	ct, _, _ := mime.ParseMediaType(c.GetHeader("Content-Type"))
	switch ct {
	case "multipart/form-data":
		if err := c.Request.ParseMultipartForm(maxBytes + formOverhead); err != nil {
			return nil, bodyError(err)
		}
		for k, v := range c.Request.MultipartForm.Value {
			f.values[k] = v
		}
		fh, hdr, err := c.Request.FormFile(fileField)
		if err == nil {
			f.file = &media.File{Name: hdr.Filename, Size: hdr.Size, Reader: fh}
			f.cleanup = func() { _ = fh.Close() }
		} else if !errors.Is(err, http.ErrMissingFile) {
			return nil, bodyError(err)
		}
	case "application/x-www-form-urlencoded":
		if err := c.Request.ParseForm(); err != nil {
			return nil, bodyError(err)
		}
		for k, v := range c.Request.PostForm {
			f.values[k] = v
		}
	default:
		raw, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return nil, bodyError(err)
		}
		if len(bytes.TrimSpace(raw)) == 0 {
			return f, nil
		}
		var obj map[string]any
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, errBadBody
		}
		for k, v := range obj {
			if vals, ok := jsonValues(v); ok {
				f.values[k] = vals
			}
		}
	}
	return f, nil
}

func bodyError(err error) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) || strings.Contains(err.Error(), "request body too large") {
		return media.ErrPayloadTooLarge
	}
	return fmt.Errorf("%w: %v", errBadBody, err)
}

// jsonValues flattens a decoded JSON value to form strings. null counts as absent.
func jsonValues(v any) ([]string, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case string:
		return []string{t}, true
	case float64:
		return []string{strconv.FormatFloat(t, 'f', -1, 64)}, true
	case bool:
		return []string{strconv.FormatBool(t)}, true
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := jsonValues(e); ok {
				out = append(out, s...)
			}
		}
		return out, true
	}
	return []string{fmt.Sprint(v)}, true
}

func (f *form) raw(key string) (string, bool) {
	v, ok := f.values[key]
	if !ok || len(v) == 0 {
		return "", false
	}
	return v[0], true
}

func (f *form) str(key string) *string {
	v, ok := f.raw(key)
	if !ok {
		return nil
	}
	return &v
}

// number fields left blank count as not supplied
func (f *form) number(key string) *float64 {
	v, ok := f.raw(key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		f.errs.Add(key, key+" must be a number")
		return nil
	}
	return &n
}

func (f *form) integer(key string) *int {
	v, ok := f.raw(key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		f.errs.Add(key, key+" must be an integer")
		return nil
	}
	return &n
}

func (f *form) flag(key string) *bool {
	v, ok := f.raw(key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		f.errs.Add(key, key+" must be true or false")
		return nil
	}
	return &b
}

// list accepts repeated values, comma separated values, or both.
func (f *form) list(key string) *[]string {
	vals, ok := f.values[key]
	if !ok {
		return nil
	}
	out := []string{}
	for _, v := range vals {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return &out
}

// err returns the parse failures collected so far.
func (f *form) err() error {
	return f.errs.OrNil()
}
