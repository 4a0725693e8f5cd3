package httpform

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
)

const defaultMaxBodyBytes int64 = 1 << 20

// Option configures a Handler.
type Option func(*Handler)

// WithSanitizer cleans text field values with policy before they reach the
// form. Nil disables sanitising.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(h *Handler) {
		h.sanitizer = policy
	}
}

// WithStrictSanitizer strips every HTML tag from text field values.
func WithStrictSanitizer() Option {
	return WithSanitizer(bluemonday.StrictPolicy())
}

// WithLogger sets the request logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger.With().Str("component", "httpform").Logger()
	}
}

// WithMaxBodyBytes caps the accepted request body size.
func WithMaxBodyBytes(limit int64) Option {
	return func(h *Handler) {
		if limit > 0 {
			h.maxBody = limit
		}
	}
}

// Handler exposes a form over HTTP.
//
//	GET    returns the current state
//	POST   applies the posted fields as change events and submits
//	DELETE resets the form to its defaults
//
// POST accepts application/x-www-form-urlencoded, multipart/form-data and
// application/json bodies. For url-encoded and multipart posts a boolean field
// missing from the body is treated as an unchecked checkbox.
type Handler struct {
	form      *form.Form
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	maxBody   int64
}

type stateResponse struct {
	form.State
	Status string `json:"status,omitempty"`
	Error  string `json:"error,omitempty"`
}

// New wraps f in a Handler.
func New(f *form.Form, opts ...Option) *Handler {
	h := &Handler{
		form:    f,
		logger:  zerolog.Nop(),
		maxBody: defaultMaxBodyBytes,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r == nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		h.write(w, r, http.StatusOK, stateResponse{State: h.form.State()})
	case http.MethodPost:
		h.submit(w, r)
	case http.MethodDelete:
		h.form.Reset()
		h.write(w, r, http.StatusOK, stateResponse{State: h.form.State(), Status: "reset"})
	default:
		w.Header().Set("Allow", "GET, HEAD, POST, DELETE")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)

	events, err := h.decodeEvents(r)
	if err != nil {
		h.logger.Debug().Err(err).Msg("rejecting malformed submission")
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	for _, event := range events {
		h.form.HandleChange(event)
	}

	status, err := h.form.Submit(r.Context(), nil)
	resp := stateResponse{State: h.form.State(), Status: status.String()}
	switch status {
	case form.SubmitAccepted:
		h.write(w, r, http.StatusOK, resp)
	case form.SubmitInvalid:
		h.write(w, r, http.StatusUnprocessableEntity, resp)
	case form.SubmitIgnored:
		h.write(w, r, http.StatusConflict, resp)
	default:
		h.logger.Error().Err(err).Msg("submit failed")
		resp.Error = http.StatusText(http.StatusInternalServerError)
		h.write(w, r, http.StatusInternalServerError, resp)
	}
}

func (h *Handler) decodeEvents(r *http.Request) ([]form.ChangeEvent, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		return h.decodeJSON(r)
	}
	return h.decodeForm(r, mediaType)
}

func (h *Handler) decodeForm(r *http.Request, mediaType string) ([]form.ChangeEvent, error) {
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(h.maxBody); err != nil {
			return nil, err
		}
	} else if err := r.ParseForm(); err != nil {
		return nil, err
	}

	store := h.form.Store()
	var events []form.ChangeEvent
	for _, name := range store.Fields() {
		fieldType, _ := store.Type(name)
		values, present := r.PostForm[name]
		if fieldType == model.FieldTypeBoolean {
			checked := present && len(values) > 0 && checkboxValue(values[len(values)-1])
			events = append(events, form.ChangeEvent{Name: name, Checked: checked})
			continue
		}
		if !present || len(values) == 0 {
			continue
		}
		events = append(events, form.ChangeEvent{Name: name, Value: h.clean(fieldType, values[len(values)-1])})
	}
	for name, values := range r.PostForm {
		if _, known := store.Type(name); !known && len(values) > 0 {
			events = append(events, form.ChangeEvent{Name: name, Value: values[0]})
		}
	}
	return events, nil
}

func (h *Handler) decodeJSON(r *http.Request) ([]form.ChangeEvent, error) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return nil, err
	}

	store := h.form.Store()
	events := make([]form.ChangeEvent, 0, len(payload))
	for name, raw := range payload {
		fieldType, _ := store.Type(name)
		event := form.ChangeEvent{Name: name}
		switch typed := raw.(type) {
		case bool:
			event.Checked = typed
			event.Value = strconv.FormatBool(typed)
		case string:
			event.Value = h.clean(fieldType, typed)
			event.Checked = checkboxValue(typed)
		case float64:
			event.Value = strconv.FormatFloat(typed, 'f', -1, 64)
		case nil:
		default:
			return nil, fmt.Errorf("httpform: field %q has unsupported JSON type %T", name, raw)
		}
		events = append(events, event)
	}
	return events, nil
}

func (h *Handler) clean(fieldType model.FieldType, value string) string {
	if h.sanitizer == nil || fieldType != model.FieldTypeString {
		return value
	}
	return h.sanitizer.Sanitize(value)
}

func (h *Handler) write(w http.ResponseWriter, r *http.Request, code int, payload stateResponse) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if r.Method == http.MethodHead {
		return
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	if err := enc.Encode(payload); err != nil {
		h.logger.Error().Err(err).Msg("encode response")
	}
}

func checkboxValue(raw string) bool {
	switch raw {
	case "on", "true", "1", "yes":
		return true
	default:
		return false
	}
}
