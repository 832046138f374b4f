package agent

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/m-v-r/docqa/generator"
	"github.com/m-v-r/docqa/history"
	"github.com/m-v-r/docqa/sites"
	toolhandler "github.com/m-v-r/docqa/tool_handler"
)

const (
	defaultMaxIterations = 10

	parseReminder = "Invalid or missing action. Respond with a single valid json blob using action/action_input fields, wrapped in ``` fences."
)

// Service runs the structured-chat loop: generate, parse the action blob,
// invoke the chosen tool, feed the observation back, until the model
// produces a Final Answer or the iteration cap is hit.
type Service struct {
	generator     generator.Generator
	catalog       *Catalog
	history       history.History
	systemPrompt  string
	contextLimit  int
	maxIterations int
	logger        zerolog.Logger
}

func (s *Service) Respond(ctx context.Context, sessionId string, userInput string) (string, error) {
	if len(strings.TrimSpace(userInput)) == 0 {
		return "", errors.New("user input is required")
	}

	s.logger.Info().Str("session", sessionId).Int("input_len", len(userInput)).Msg("processing question")

	turns, err := s.history.Recent(ctx, sessionId, s.contextLimit)
	if err != nil {
		return "", fmt.Errorf("history error: %w", err)
	}

	s.addTurn(ctx, sessionId, "user", userInput)

	var steps []step

	for i := 0; i < s.maxIterations; i++ {
		prompt := buildTurnPrompt(s.systemPrompt, turns, userInput, steps)

		output, err := s.generator.Generate(ctx, prompt)
		if err != nil {
			return "", err
		}

		act, err := parseAction(output)
		if err != nil {
			s.logger.Warn().Str("session", sessionId).Int("iteration", i).Msg("unparsable model output")
			steps = append(steps, step{Output: output, Observation: parseReminder})
			continue
		}

		if act.isFinal() {
			answer := act.answer()
			s.addTurn(ctx, sessionId, "assistant", answer)
			s.logger.Info().Str("session", sessionId).Int("iterations", i+1).Int("answer_len", len(answer)).Msg("answer generated")
			return answer, nil
		}

		th, spec, ok := s.catalog.Get(act.Name)
		if !ok {
			steps = append(steps, step{
				Output:      output,
				Observation: fmt.Sprintf("unknown tool: %s, available tools: %s", act.Name, strings.Join(s.catalog.Names(), ", ")),
			})
			continue
		}

		s.logger.Info().Str("session", sessionId).Str("tool", spec.Name).Msg("invoking tool")

		rsp, err := th.Invoke(ctx, toolhandler.ToolRequest{
			SessionId: sessionId,
			Arguments: act.Arguments,
		})

		observation := rsp.Content
		if err != nil {
			observation = fmt.Sprintf("tool error: %v", err)
			s.logger.Warn().Str("session", sessionId).Str("tool", spec.Name).Err(err).Msg("tool invocation failed")
		} else {
			s.addTurn(ctx, sessionId, "tool", fmt.Sprintf("%s => %s", spec.Name, strings.TrimSpace(rsp.Content)))
		}

		steps = append(steps, step{Output: output, Observation: observation})
	}

	return "", fmt.Errorf("agent stopped after %d iterations without a final answer", s.maxIterations)
}

func (s *Service) addTurn(ctx context.Context, sessionId string, role string, text string) {
	if err := s.history.Append(ctx, sessionId, role, text); err != nil {
		s.logger.Warn().Str("session", sessionId).Err(err).Msg("failed to record history turn")
	}
}

func New(
	gen generator.Generator,
	toolHandlers []toolhandler.ToolHandler,
	hist history.History,
	sources []sites.Source,
	maxResults int,
	contextLimit int,
) (*Service, error) {
	if gen == nil {
		panic("generator is required")
	}

	if hist == nil {
		panic("history is required")
	}

	catalog, err := NewCatalog(toolHandlers)
	if err != nil {
		return nil, err
	}

	if maxResults <= 0 {
		maxResults = 3
	}

	if contextLimit <= 0 {
		contextLimit = 8
	}

	s := &Service{
		generator:     gen,
		catalog:       catalog,
		history:       hist,
		contextLimit:  contextLimit,
		maxIterations: defaultMaxIterations,
		logger:        zerolog.New(os.Stderr).With().Timestamp().Str("component", "agent").Logger(),
	}

	s.systemPrompt = buildSystemPrompt(
		sites.Markdown(sources),
		sites.Domains(sources),
		maxResults,
		catalog.ListSpecs(),
		catalog.Names(),
	)

	return s, nil
}
