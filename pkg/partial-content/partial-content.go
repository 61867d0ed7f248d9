package partialcontent

import (
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"time"

	rangeparser "github.com/always-cache/range-parser"
	"github.com/always-cache/range-parser/rfc9110"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultContentType = "application/octet-stream"

// Content is the selected representation to serve.
type Content struct {
	Reader io.ReadSeeker
	// Size is the complete length of the representation.
	Size int64
	// Type is the media type; application/octet-stream is used if empty.
	Type string
	// Optional validators, also used to evaluate If-Range.
	ETag         rfc9110.EntityTag
	LastModified time.Time
}

type Config struct {
	// Combine overlapping and adjacent ranges before serving them.
	Combine bool
	// Serve the full representation instead when more ranges than this are requested.
	// Zero means no limit.
	MaxRanges int
	// Logger to use. The global zerolog logger is used if nil.
	Logger *zerolog.Logger
}

func (c Config) logger() *zerolog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return &log.Logger
}

// Serve writes content to w, honouring the Range and If-Range headers of r.
// The response is a 200 with the full representation, a 206 with a single range
// or a multipart/byteranges body, or a 416 when no requested range is satisfiable.
func Serve(w http.ResponseWriter, r *http.Request, content Content, config Config) {
	logger := config.logger().With().
		Str("method", r.Method).
		Str("url", r.URL.String()).
		Logger()

	h := w.Header()
	h.Set("Accept-Ranges", rfc9110.BytesUnit)
	if etag := content.ETag.String(); etag != "" {
		h.Set("ETag", etag)
	}
	if !content.LastModified.IsZero() {
		h.Set("Last-Modified", rfc9110.ToHttpDate(content.LastModified))
	}
	if content.Type == "" {
		content.Type = defaultContentType
	}

	set, err := selectRanges(r, content, config, &logger)
	switch {
	case err != nil:
		logger.Debug().Str("range", r.Header.Get("Range")).Msg("Range not satisfiable")
		h.Set("Content-Range", rfc9110.UnsatisfiedRange(rfc9110.BytesUnit, content.Size))
		h.Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusRequestedRangeNotSatisfiable)
		io.WriteString(w, http.StatusText(http.StatusRequestedRangeNotSatisfiable))
	case set.Len() == 0:
		serveFull(w, r, content, &logger)
	case set.Len() == 1:
		serveSingle(w, r, content, set.Ranges[0], &logger)
	default:
		serveMultipart(w, r, content, set, &logger)
	}
}

// selectRanges returns the ranges to serve. An empty set means the full representation.
// The only error is rangeparser.ErrUnsatisfiable.
func selectRanges(r *http.Request, content Content, config Config, logger *zerolog.Logger) (rangeparser.RangeSet, error) {
	none := rangeparser.RangeSet{}

	// §  14.2.  Range
	// §
	// §     A server MUST ignore a Range header field received with a request
	// §     method that is unrecognized or for which range handling is not
	// §     defined.  For this specification, GET is the only method for which
	// §     range handling is defined.
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return none, nil
	}
	header := r.Header.Get("Range")
	if header == "" {
		return none, nil
	}

	// §     An origin server MUST ignore a Range header field that contains a
	// §     range unit it does not understand.
	if unit, _, ok := rfc9110.SplitRangesSpecifier(header); ok && !rfc9110.IsBytesUnit(unit) {
		logger.Trace().Str("unit", unit).Msg("Ignoring unknown range unit")
		return none, nil
	}

	if !rfc9110.IfRange(r.Header.Get("If-Range"), content.ETag, content.LastModified) {
		logger.Trace().Str("ifRange", r.Header.Get("If-Range")).Msg("If-Range did not match, ignoring Range")
		return none, nil
	}

	set, err := rangeparser.ParseWithOptions(content.Size, header, rangeparser.Options{
		Combine:        config.Combine,
		SentinelErrors: true,
		Logger:         logger,
	})
	switch {
	case rangeparser.CodeOf(err) == rangeparser.Unsatisfiable:
		return none, err
	case err != nil:
		// §     A server MAY ignore the Range header field.
		logger.Trace().Err(err).Str("range", header).Msg("Ignoring invalid Range")
		return none, nil
	}

	if config.MaxRanges > 0 && set.Len() > config.MaxRanges {
		logger.Debug().Int("ranges", set.Len()).Int("max", config.MaxRanges).Msg("Too many ranges, sending full content")
		return none, nil
	}
	return set, nil
}

func serveFull(w http.ResponseWriter, r *http.Request, content Content, logger *zerolog.Logger) {
	w.Header().Set("Content-Type", content.Type)
	w.Header().Set("Content-Length", strconv.FormatInt(content.Size, 10))
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if err := copySection(w, content.Reader, 0, content.Size); err != nil {
		logger.Error().Err(err).Msg("Could not write response body to client")
	}
}

// §  15.3.7.1.  Single Part
// §
// §     If a single part is being transferred, the server generating the 206
// §     response MUST generate a Content-Range header field, describing what
// §     range of the selected representation is enclosed, and a content
// §     consisting of the range.
func serveSingle(w http.ResponseWriter, r *http.Request, content Content, rng rangeparser.Range, logger *zerolog.Logger) {
	h := w.Header()
	h.Set("Content-Type", content.Type)
	h.Set("Content-Range", rfc9110.ContentRange(rfc9110.BytesUnit, rng.Start, rng.End, content.Size))
	h.Set("Content-Length", strconv.FormatInt(rng.Len(), 10))
	w.WriteHeader(http.StatusPartialContent)
	if r.Method == http.MethodHead {
		return
	}
	if err := copySection(w, content.Reader, rng.Start, rng.Len()); err != nil {
		logger.Error().Err(err).Msg("Could not write response body to client")
		return
	}
	logger.Trace().Stringer("range", rng).Msg("Wrote single range")
}

// §  15.3.7.2.  Multiple Parts
// §
// §     If multiple parts are being transferred, the server generating the
// §     206 response MUST generate "multipart/byteranges" content, as defined
// §     in Section 14.6, and a Content-Type header field containing the
// §     "multipart/byteranges" media type and its required boundary
// §     parameter.
// §
// §     Within the header area of each body part in the multipart content,
// §     the server MUST generate a Content-Range header field corresponding
// §     to the range being enclosed in that body part.  If the selected
// §     representation would have had a Content-Type header field in a 200
// §     (OK) response, the server SHOULD generate that same Content-Type
// §     header field in the header area of each body part.
func serveMultipart(w http.ResponseWriter, r *http.Request, content Content, set rangeparser.RangeSet, logger *zerolog.Logger) {
	mw := multipart.NewWriter(w)
	w.Header().Set("Content-Type", "multipart/byteranges; boundary="+mw.Boundary())
	w.WriteHeader(http.StatusPartialContent)
	if r.Method == http.MethodHead {
		return
	}
	for _, rng := range set.Ranges {
		part, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":  {content.Type},
			"Content-Range": {rfc9110.ContentRange(rfc9110.BytesUnit, rng.Start, rng.End, content.Size)},
		})
		if err == nil {
			err = copySection(part, content.Reader, rng.Start, rng.Len())
		}
		if err != nil {
			logger.Error().Err(err).Stringer("range", rng).Msg("Could not write response part to client")
			return
		}
	}
	if err := mw.Close(); err != nil {
		logger.Error().Err(err).Msg("Could not finish multipart response")
		return
	}
	logger.Trace().Int("parts", set.Len()).Msg("Wrote multipart ranges")
}

func copySection(w io.Writer, r io.ReadSeeker, start, length int64) error {
	if _, err := r.Seek(start, io.SeekStart); err != nil {
		return err
	}
	_, err := io.CopyN(w, r, length)
	return err
}
