package genai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// ParseIdeas interprets a raw model response as a list of generated ideas
// and normalizes it against what the caller actually asked for:
//
//   - the first balanced JSON value is extracted from the surrounding prose;
//   - a single object is accepted in place of a one-element array, and an
//     {"ideas": [...]} wrapper is unwrapped (models produce both shapes);
//   - each idea's niche is forced to the requested niche — the model's echo
//     is never trusted;
//   - missing hashtags fall back to the caller-supplied list;
//   - the result has exactly want entries or the call fails. A surplus is
//     truncated to want; a short list is a *ParseError, never a silent
//     partial success.
func ParseIdeas(raw string, want int, niche string, fallbackTags []string) ([]Idea, error) {
	payload, ok := ExtractJSON(raw)
	if !ok {
		log.Warn().Int("response_len", len(raw)).Msg("no JSON structure in generation response")
		return nil, &ParseError{Reason: "no JSON structure found in response"}
	}

	ideas, err := decodeIdeas(payload)
	if err != nil {
		log.Warn().Err(err).Msg("generation response JSON did not match the idea schema")
		return nil, &ParseError{Reason: err.Error()}
	}

	for i := range ideas {
		if strings.TrimSpace(ideas[i].BusinessName) == "" {
			return nil, &ParseError{Reason: fmt.Sprintf("idea %d has no business name", i)}
		}
		if strings.TrimSpace(ideas[i].Description) == "" {
			return nil, &ParseError{Reason: fmt.Sprintf("idea %d has no description", i)}
		}
		ideas[i].Niche = niche
		if len(ideas[i].Hashtags) == 0 {
			ideas[i].Hashtags = append([]string(nil), fallbackTags...)
		}
	}

	if len(ideas) < want {
		log.Warn().Int("want", want).Int("got", len(ideas)).Msg("model returned fewer ideas than requested")
		return nil, &ParseError{Reason: fmt.Sprintf("requested %d ideas, response contained %d", want, len(ideas))}
	}
	return ideas[:want], nil
}

// decodeIdeas accepts the three shapes models actually produce: an array of
// ideas, a bare idea object, or an object wrapping the array under "ideas".
func decodeIdeas(payload string) ([]Idea, error) {
	var list []Idea
	if err := json.Unmarshal([]byte(payload), &list); err == nil {
		return list, nil
	}

	var wrapper struct {
		Ideas []Idea `json:"ideas"`
	}
	if err := json.Unmarshal([]byte(payload), &wrapper); err == nil && len(wrapper.Ideas) > 0 {
		return wrapper.Ideas, nil
	}

	var single Idea
	if err := json.Unmarshal([]byte(payload), &single); err != nil {
		return nil, fmt.Errorf("decode ideas: %w", err)
	}
	if single.BusinessName == "" && single.Description == "" {
		return nil, fmt.Errorf("decoded object carries none of the expected fields")
	}
	return []Idea{single}, nil
}
