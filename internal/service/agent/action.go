package agent

import (
	"encoding/json"
	"errors"
	"strings"
)

const finalAnswerAction = "Final Answer"

var errNoAction = errors.New("no action blob found in model output")

// action is the single step the model picks each turn: either a tool call
// or the final answer.
type action struct {
	Name      string
	Input     any
	Arguments map[string]any
}

func (a *action) isFinal() bool {
	return strings.EqualFold(strings.TrimSpace(a.Name), finalAnswerAction)
}

func (a *action) answer() string {
	if s, ok := a.Input.(string); ok {
		return s
	}
	if b, err := json.Marshal(a.Input); err == nil {
		return string(b)
	}
	return ""
}

// parseAction extracts the action JSON blob from model output. The model is
// instructed to reply with a fenced blob of the form
// {"action": "...", "action_input": ...}; bare JSON output is accepted too.
func parseAction(output string) (*action, error) {
	for _, candidate := range jsonCandidates(output) {
		var blob struct {
			Action      string `json:"action"`
			ActionInput any    `json:"action_input"`
		}
		if err := json.Unmarshal([]byte(candidate), &blob); err != nil {
			continue
		}
		if len(strings.TrimSpace(blob.Action)) == 0 {
			continue
		}

		a := &action{
			Name:  blob.Action,
			Input: blob.ActionInput,
		}

		switch v := blob.ActionInput.(type) {
		case map[string]any:
			a.Arguments = v
		case string:
			a.Arguments = map[string]any{"input": v}
		case nil:
			a.Arguments = map[string]any{}
		default:
			a.Arguments = map[string]any{"input": v}
		}

		return a, nil
	}

	return nil, errNoAction
}

// jsonCandidates yields fenced code blocks first, then the first top-level
// JSON object in the raw output.
func jsonCandidates(output string) []string {
	var candidates []string

	rest := output
	for {
		start := strings.Index(rest, "```")
		if start < 0 {
			break
		}
		rest = rest[start+3:]
		// tolerate a language tag on the fence
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 && nl < 10 && !strings.Contains(rest[:nl], "{") {
			rest = rest[nl+1:]
		}
		end := strings.Index(rest, "```")
		if end < 0 {
			candidates = append(candidates, strings.TrimSpace(rest))
			break
		}
		candidates = append(candidates, strings.TrimSpace(rest[:end]))
		rest = rest[end+3:]
	}

	if start := strings.IndexByte(output, '{'); start >= 0 {
		if end := strings.LastIndexByte(output, '}'); end > start {
			candidates = append(candidates, strings.TrimSpace(output[start:end+1]))
		}
	}

	return candidates
}
