package agent

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/m-v-r/docqa/history"
	toolhandler "github.com/m-v-r/docqa/tool_handler"
)

// buildSystemPrompt renders the instructions the model sees every turn:
// the approved knowledge sources, the tool usage strategy, and the JSON
// action-blob protocol it must answer with.
func buildSystemPrompt(knowledgeSourcesMd string, domains []string, maxResults int, specs []toolhandler.ToolSpec, names []string) string {
	var sb bytes.Buffer

	sb.WriteString("You are a specialized Q&A agent that searches specific documentation websites.\n\n")

	sb.WriteString("AVAILABLE KNOWLEDGE SOURCES split by category/domain/topic having the website and description for each category:\n")
	sb.WriteString(knowledgeSourcesMd)

	sb.WriteString("\nINSTRUCTIONS:\n")
	sb.WriteString("1. ALWAYS start with the search tool for ANY question\n")
	sb.WriteString("2. Analyze the user's question to determine relevant domains/topics/categories\n")
	sb.WriteString("3. Select appropriate sites based on technologies/topics mentioned\n")
	sb.WriteString("4. If search results don't provide sufficient information to answer the question completely, then use the scrape tool on the most relevant URL from search results\n")
	sb.WriteString(fmt.Sprintf("5. You must only answer questions about available knowledge sources: %s\n", strings.Join(domains, ", ")))
	sb.WriteString("6. If question is outside available knowledge sources, do not answer the question and suggest which topics you can answer\n")

	sb.WriteString("\nTOOL USAGE STRATEGY:\n")
	sb.WriteString("- First: Use the search tool to find relevant information quickly. You must always pass the 'site:' operator to restrict search to specific domains in the knowledge sources list only. ")
	sb.WriteString(fmt.Sprintf("You must set the search tool parameter n_results to %d or less.\n", maxResults))
	sb.WriteString("- Second: If search results are incomplete, unclear or do not provide enough information to answer the question, use the scrape tool on the most promising URL from search results\n")

	sb.WriteString("\nRULES:\n")
	sb.WriteString("- Be helpful and comprehensive and cite sources when possible\n")
	sb.WriteString("- Only use scraping when search results provide no answer\n")
	sb.WriteString("- When scraping, choose the most relevant URL from previous search results\n")

	sb.WriteString("\nYou have access to the following tools:\n\n")
	for _, spec := range specs {
		sb.WriteString(fmt.Sprintf("- %s: %s\n", spec.Name, spec.Description))
		if len(spec.InputSchema) > 0 {
			schemaJSON, _ := json.MarshalIndent(spec.InputSchema, "  ", "  ")
			sb.WriteString("  Input schema: ")
			sb.Write(schemaJSON)
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\nUse a json blob to specify a tool by providing an action key (tool name) and an action_input key (tool input).\n\n")
	sb.WriteString(fmt.Sprintf("Valid \"action\" values: \"Final Answer\" or %s\n\n", strings.Join(names, ", ")))
	sb.WriteString("Provide only ONE action per $JSON_BLOB, as shown:\n")
	sb.WriteString("```\n{\n  \"action\": \"$TOOL_NAME\",\n  \"action_input\": \"$INPUT\"\n}\n```\n\n")
	sb.WriteString("Follow this format:\n\n")
	sb.WriteString("Question: input question to answer\n")
	sb.WriteString("Thought: consider previous and subsequent steps\n")
	sb.WriteString("Action:\n```\n$JSON_BLOB\n```\n")
	sb.WriteString("Observation: action result\n")
	sb.WriteString("... (repeat Thought/Action/Observation N times)\n")
	sb.WriteString("Thought: I know what to respond\n")
	sb.WriteString("Action:\n```\n{\n  \"action\": \"Final Answer\",\n  \"action_input\": \"response\"\n}\n```\n\n")
	sb.WriteString("Begin! Reminder to ALWAYS respond with a valid json blob of a single action. Use tools if necessary. Respond directly if appropriate and ask for clarification if something is not clear. Format is Action:```$JSON_BLOB```then Observation\n")

	return sb.String()
}

// step is one completed Thought/Action/Observation round in this request.
type step struct {
	Output      string
	Observation string
}

func buildTurnPrompt(systemPrompt string, turns []history.Turn, input string, steps []step) string {
	var sb bytes.Buffer

	sb.WriteString(systemPrompt)

	if len(turns) > 0 {
		sb.WriteString("\nConversation History:\n")
		for _, turn := range turns {
			sb.WriteString(fmt.Sprintf("[%s]: %s\n", turn.Role, turn.Text))
		}
	}

	sb.WriteString("\nQuestion: ")
	sb.WriteString(strings.TrimSpace(input))
	sb.WriteString("\n\n")

	for _, s := range steps {
		sb.WriteString(s.Output)
		sb.WriteString("\nObservation: ")
		sb.WriteString(s.Observation)
		sb.WriteString("\n")
	}

	sb.WriteString("\n(reminder to respond in a JSON blob no matter what)\n")
	sb.WriteString("IMPORTANT: When calling a tool keep the JSON blob in the same format using action/action_input fields\n")

	return sb.String()
}
