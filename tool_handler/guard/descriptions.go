package guard

// Custom descriptions pushed onto the remote tool specs so the model keeps
// its searches inside the approved knowledge sources.

const searchDescription = `Search documentation websites using Google Search.

Use this tool to search within specific documentation websites for relevant information.
Always start with this tool before using web scraping.

How to use:
1. Provide a search query targeting your specific question
2. Add site restrictions for relevant documentation domains from the knowledge sources

Parameters:
- query: Search query with mandatory 'site:' operators for domain restriction
- n_results: Maximum number of results to return (default 3 but increase or decrease as needed)

IMPORTANT: You must always use the 'site:' operator to restrict search to specific domains, example:
    query="LangChain agents site:python.langchain.com"
Do not use any other site besides the ones listed in the knowledge sources.
You can include multiple sites by separating them with ' OR ' in the query. Example:
    query="LangChain agents site:python.langchain.com OR site:docs.langchain.com"

Returns a json string with a list of search results with titles, links, and snippets.
Snippets are important short summaries of the content that you must use in your response.`

const scrapeDescription = `Scrape a URL and return the extracted page content.

Use this tool when:
1. Search results don't provide sufficient information
2. You need complete documentation page content, code examples, or detailed explanations

Best practices:
- Only use after the search tool provides insufficient information
- Prefer URLs from previous search results for relevance
- Verify the URL is from an approved documentation site

Parameters:
- url: Complete webpage URL to scrape (must include http(s)://)

Returns full extracted page content as text.

Example:
url="https://python.langchain.com/docs/modules/agents/quick_start"`
