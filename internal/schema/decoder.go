package schema

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/lol-match-history/internal/platform/logging"
)

const (
	rootPath = "$"

	unknownFieldNoticeCapacity          = 4096
	unknownFieldNoticeFalsePositiveRate = 0.01
)

var (
	lenientAPI = sonic.ConfigDefault
	strictAPI  = sonic.Config{DisallowUnknownFields: true}.Froze()
)

// Decoder turns raw upstream bytes into validated payloads. Unknown fields
// are tolerated; they are only reported at debug level, once per shape.
type Decoder struct {
	validate *validator.Validate
	logger   *logging.Logger
	notices  *noticeFilter
}

func NewDecoder(logger *logging.Logger) *Decoder {
	if logger == nil {
		logger = logging.Default()
	}

	validate := validator.New()
	validate.RegisterTagNameFunc(jsonFieldName)

	return &Decoder{
		validate: validate,
		logger:   logger,
		notices:  newNoticeFilter(),
	}
}

func (d *Decoder) DecodeMatch(raw []byte) (*MatchPayload, error) {
	var payload MatchPayload
	if err := d.unmarshal(raw, &payload, rootPath, true); err != nil {
		return nil, err
	}
	if err := d.validateStruct(&payload, ""); err != nil {
		return nil, err
	}
	return &payload, nil
}

// DecodeMatchIDs decodes the by-puuid id listing.
func (d *Decoder) DecodeMatchIDs(raw []byte) ([]string, error) {
	var ids []string
	if err := d.unmarshal(raw, &ids, rootPath, false); err != nil {
		return nil, err
	}
	for i, id := range ids {
		if strings.TrimSpace(id) == "" {
			return nil, &SchemaValidationError{Path: fmt.Sprintf("[%d]", i), Reason: "is required"}
		}
	}
	return ids, nil
}

// DecodeTimeline decodes the frame list and resolves every event to its
// variant. Any unknown event tag fails the whole payload.
func (d *Decoder) DecodeTimeline(raw []byte) (*TimelinePayload, error) {
	var payload TimelinePayload
	if err := d.unmarshal(raw, &payload, rootPath, true); err != nil {
		return nil, err
	}
	if err := d.validateStruct(&payload, ""); err != nil {
		return nil, err
	}

	for i := range payload.Info.Frames {
		frame := &payload.Info.Frames[i]
		frame.Events = make([]Event, 0, len(frame.RawEvents))
		for j, rawEvent := range frame.RawEvents {
			event, err := d.decodeEvent(rawEvent, fmt.Sprintf("info.frames[%d].events[%d]", i, j))
			if err != nil {
				return nil, err
			}
			frame.Events = append(frame.Events, event)
		}
		frame.RawEvents = nil
	}
	return &payload, nil
}

func (d *Decoder) decodeEvent(raw []byte, path string) (Event, error) {
	var header EventHeader
	if err := d.unmarshal(raw, &header, path, false); err != nil {
		return nil, err
	}
	if strings.TrimSpace(header.Type) == "" {
		return nil, &SchemaValidationError{Path: path + ".type", Reason: "is required"}
	}

	event, ok := NewEvent(header.Type)
	if !ok {
		return nil, &UnknownEventTypeError{Path: path, Type: header.Type}
	}

	_, ignored := event.(*IgnoredEvent)
	if err := d.unmarshal(raw, event, path, !ignored); err != nil {
		return nil, err
	}
	if err := d.validateStruct(event, path); err != nil {
		return nil, err
	}
	return event, nil
}

func (d *Decoder) unmarshal(raw []byte, target any, path string, probe bool) error {
	if err := lenientAPI.Unmarshal(raw, target); err != nil {
		return &SchemaValidationError{Path: path, Reason: "malformed payload: " + err.Error()}
	}
	if !probe || !d.logger.Enabled(logging.LevelDebug) {
		return nil
	}

	shadow := reflect.New(reflect.TypeOf(target).Elem()).Interface()
	if err := strictAPI.Unmarshal(raw, shadow); err != nil {
		if !d.notices.first(fmt.Sprintf("%T|%s", target, err.Error())) {
			return nil
		}
		d.logger.Debug("payload carries fields without a decoder",
			"path", path,
			"target", fmt.Sprintf("%T", target),
			"detail", err.Error(),
		)
	}
	return nil
}

func (d *Decoder) validateStruct(value any, prefix string) error {
	err := d.validate.Struct(value)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !crerr.As(err, &validationErrs) || len(validationErrs) == 0 {
		return crerr.Wrap(err, "validate payload")
	}

	fieldErr := validationErrs[0]
	path := stripRoot(fieldErr.Namespace())
	if prefix != "" {
		path = prefix + "." + path
	}
	return &SchemaValidationError{Path: path, Reason: describeFieldError(fieldErr)}
}

func describeFieldError(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "unique":
		return "must not repeat " + fieldErr.Param()
	default:
		if fieldErr.Param() != "" {
			return fmt.Sprintf("must satisfy %s=%s, got %v", fieldErr.Tag(), fieldErr.Param(), fieldErr.Value())
		}
		return fmt.Sprintf("must satisfy %s, got %v", fieldErr.Tag(), fieldErr.Value())
	}
}

// Embedded structs have no wire name of their own.
var embeddedSegments = strings.NewReplacer("EventHeader.", "", "ParticipantStatsPayload.", "")

// stripRoot drops the Go type name validator puts in front of namespaces.
func stripRoot(namespace string) string {
	if idx := strings.Index(namespace, "."); idx >= 0 {
		namespace = namespace[idx+1:]
	}
	return embeddedSegments.Replace(namespace)
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "" || name == "-" {
		return field.Name
	}
	return name
}

// noticeFilter drops repeats of a debug notice. A false positive only
// silences one more line, and the filter starts over once full.
type noticeFilter struct {
	mu     sync.Mutex
	filter *bloom.BloomFilter
	added  uint
}

func newNoticeFilter() *noticeFilter {
	return &noticeFilter{
		filter: bloom.NewWithEstimates(unknownFieldNoticeCapacity, unknownFieldNoticeFalsePositiveRate),
	}
}

func (n *noticeFilter) first(key string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.added >= unknownFieldNoticeCapacity {
		n.filter.ClearAll()
		n.added = 0
	}
	if n.filter.TestOrAddString(key) {
		return false
	}
	n.added++
	return true
}
