package reconciler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type suggestionForm int

const (
	arrayForm suggestionForm = iota
	objectForm
)

// suggestionEntry is one element of the located literal, kept raw
// until it is validated. For the object form, label holds the key.
type suggestionEntry struct {
	position int
	label    string
	value    json.RawMessage
}

type parsedSuggestion struct {
	form    suggestionForm
	entries []suggestionEntry
}

// parseSuggestion walks the literal token by token so that object keys
// keep the order the oracle wrote them in.
func parseSuggestion(literal string) (*parsedSuggestion, error) {
	if !json.Valid([]byte(literal)) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrUnparsableResponse)
	}

	dec := json.NewDecoder(strings.NewReader(literal))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparsableResponse, err)
	}

	out := &parsedSuggestion{}
	switch tok {
	case json.Delim('['):
		out.form = arrayForm
	case json.Delim('{'):
		out.form = objectForm
	default:
		return nil, fmt.Errorf("%w: expected array or object, got %v", ErrUnparsableResponse, tok)
	}

	for i := 0; dec.More(); i++ {
		entry := suggestionEntry{position: i}
		if out.form == objectForm {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrUnparsableResponse, err)
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("%w: unexpected object key %v", ErrUnparsableResponse, keyTok)
			}
			entry.label = key
		}
		if err := dec.Decode(&entry.value); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnparsableResponse, err)
		}
		out.entries = append(out.entries, entry)
	}

	return out, nil
}

type entryFields struct {
	tradeID     *int64
	quantity    int64
	explanation string
}

var (
	idKeys          = []string{"id", "tradeId", "trade_id", "tradeID"}
	quantityKeys    = []string{"quantity", "qty"}
	explanationKeys = []string{"explanation", "reason"}

	maxQuantity = decimal.New(1, 12)
)

// decodeEntry accepts either a bare quantity or an object with a
// quantity and optional id and explanation.
func decodeEntry(value json.RawMessage) (entryFields, error) {
	dec := json.NewDecoder(bytes.NewReader(value))
	dec.UseNumber()

	var generic interface{}
	if err := dec.Decode(&generic); err != nil {
		return entryFields{}, err
	}

	switch v := generic.(type) {
	case json.Number, string:
		quantity, err := parseQuantity(v)
		if err != nil {
			return entryFields{}, err
		}
		return entryFields{quantity: quantity}, nil
	case map[string]interface{}:
		return decodeEntryObject(v)
	default:
		return entryFields{}, fmt.Errorf("unsupported entry %s", string(value))
	}
}

func decodeEntryObject(obj map[string]interface{}) (entryFields, error) {
	out := entryFields{}

	if raw, ok := firstPresent(obj, idKeys); ok {
		id, err := parseInteger(raw)
		if err != nil {
			return out, fmt.Errorf("invalid trade id: %w", err)
		}
		out.tradeID = &id
	}

	raw, ok := firstPresent(obj, quantityKeys)
	if !ok {
		return out, fmt.Errorf("missing quantity")
	}
	quantity, err := parseQuantity(raw)
	if err != nil {
		return out, err
	}
	out.quantity = quantity

	if raw, ok := firstPresent(obj, explanationKeys); ok {
		if s, isString := raw.(string); isString {
			out.explanation = s
		} else {
			out.explanation = fmt.Sprint(raw)
		}
	}

	return out, nil
}

// null values count as absent
func firstPresent(obj map[string]interface{}, keys []string) (interface{}, bool) {
	for _, k := range keys {
		if v, ok := obj[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func parseQuantity(v interface{}) (int64, error) {
	q, err := parseInteger(v)
	if err != nil {
		return 0, fmt.Errorf("invalid quantity: %w", err)
	}
	if q < 0 {
		return 0, fmt.Errorf("invalid quantity: %d is negative", q)
	}
	return q, nil
}

func parseInteger(v interface{}) (int64, error) {
	var (
		d   decimal.Decimal
		err error
	)
	switch n := v.(type) {
	case json.Number:
		d, err = decimal.NewFromString(n.String())
	case string:
		d, err = decimal.NewFromString(strings.TrimSpace(n))
	default:
		return 0, fmt.Errorf("%v is not a number", v)
	}
	if err != nil {
		return 0, fmt.Errorf("%v is not a number", v)
	}
	if !d.IsInteger() {
		return 0, fmt.Errorf("%s is not an integer", d.String())
	}
	if d.Abs().GreaterThan(maxQuantity) {
		return 0, fmt.Errorf("%s is out of range", d.String())
	}
	return d.IntPart(), nil
}
