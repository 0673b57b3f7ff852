package lambda

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
)

// Canonical defaults used when the envelope does not carry a value
const (
	DefaultMethod = "GET"
	DefaultPath   = "/"
	DefaultBody   = "{}"

	MethodOptions = "OPTIONS"

	defaultStage = "$default"
)

// EnvelopeKind identifies which inbound event shape was received
type EnvelopeKind int

const (
	// KindUnknown is the fallback when no recognized shape matched
	KindUnknown EnvelopeKind = iota
	// KindHTTPContext is the function URL / HTTP API shape: requestContext.http.{method,path}
	KindHTTPContext
	// KindGatewayContext is the REST gateway shape: requestContext.{httpMethod,path}
	KindGatewayContext
	// KindDirect is a direct invocation: top-level {httpMethod,path}
	KindDirect
)

func (k EnvelopeKind) String() string {
	switch k {
	case KindHTTPContext:
		return "http-context"
	case KindGatewayContext:
		return "gateway-context"
	case KindDirect:
		return "direct"
	default:
		return "unknown"
	}
}

// Envelope is the decoded inbound event, reduced to the fields routing needs
type Envelope struct {
	Kind      EnvelopeKind
	Method    string
	Path      string
	Body      string
	Stage     string
	RequestID string
	Headers   map[string]string
	Query     map[string]string
}

type rawRequestContext struct {
	HTTP       *events.APIGatewayV2HTTPRequestContextHTTPDescription `json:"http"`
	HTTPMethod string                                                `json:"httpMethod"`
	Path       string                                                `json:"path"`
	Stage      string                                                `json:"stage"`
	RequestID  string                                                `json:"requestId"`
}

type rawEvent struct {
	HTTPMethod            string             `json:"httpMethod"`
	Path                  string             `json:"path"`
	RawPath               string             `json:"rawPath"`
	Body                  *string            `json:"body"`
	IsBase64Encoded       bool               `json:"isBase64Encoded"`
	Headers               map[string]string  `json:"headers"`
	QueryStringParameters map[string]string  `json:"queryStringParameters"`
	RequestContext        *rawRequestContext `json:"requestContext"`
}

// DecodeEnvelope recognizes the event shape. Fields of an unexpected JSON type
// are skipped rather than failing the whole decode; input that is not a JSON
// object yields KindUnknown with canonical defaults.
func DecodeEnvelope(raw []byte) Envelope {
	env := Envelope{
		Kind:   KindUnknown,
		Method: DefaultMethod,
		Path:   DefaultPath,
		Body:   DefaultBody,
	}

	var ev rawEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return env
		}
	}

	rc := ev.RequestContext
	switch {
	case rc != nil && rc.HTTP != nil && rc.HTTP.Method != "":
		env.Kind = KindHTTPContext
		env.Method = rc.HTTP.Method
		env.Path = firstNonEmpty(rc.HTTP.Path, ev.RawPath)
	case rc != nil && rc.HTTPMethod != "":
		env.Kind = KindGatewayContext
		env.Method = rc.HTTPMethod
		env.Path = firstNonEmpty(rc.Path, ev.Path)
	case ev.HTTPMethod != "":
		env.Kind = KindDirect
		env.Method = ev.HTTPMethod
		env.Path = ev.Path
	default:
		return env
	}

	env.Method = strings.ToUpper(env.Method)
	if env.Path == "" {
		env.Path = DefaultPath
	}

	if rc != nil {
		env.Stage = rc.Stage
		env.RequestID = rc.RequestID
		env.Path = stripStage(env.Path, env.Stage)
	}

	env.Body = extractBody(ev.Body, ev.IsBase64Encoded)
	env.Headers = lowerKeys(ev.Headers)
	env.Query = ev.QueryStringParameters

	return env
}

// Request converts the envelope into the canonical request descriptor
func (e Envelope) Request() *Request {
	requestID := e.RequestID
	if requestID == "" {
		requestID = e.Headers["x-request-id"]
	}
	if requestID == "" {
		requestID = uuid.New().String()
	}

	headers := e.Headers
	if headers == nil {
		headers = map[string]string{}
	}
	query := e.Query
	if query == nil {
		query = map[string]string{}
	}

	return &Request{
		Method:      e.Method,
		Path:        e.Path,
		Headers:     headers,
		QueryParams: query,
		Body:        []byte(e.Body),
		PathParams:  map[string]string{},
		RequestID:   requestID,
		Kind:        e.Kind,
	}
}

// Normalize decodes a raw inbound event straight into a canonical request
func Normalize(raw []byte) *Request {
	return DecodeEnvelope(raw).Request()
}

func extractBody(body *string, isBase64 bool) string {
	if body == nil || *body == "" {
		return DefaultBody
	}
	if !isBase64 {
		return *body
	}

	decoded, err := base64.StdEncoding.DecodeString(*body)
	if err != nil || len(decoded) == 0 {
		return DefaultBody
	}
	return string(decoded)
}

// stripStage removes a leading "/<stage>" segment that REST gateways
// include in requestContext.path
func stripStage(path, stage string) string {
	if stage == "" || stage == defaultStage {
		return path
	}

	prefix := "/" + stage
	switch {
	case path == prefix:
		return DefaultPath
	case strings.HasPrefix(path, prefix+"/"):
		return path[len(prefix):]
	default:
		return path
	}
}

func lowerKeys(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[strings.ToLower(k)] = v
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
