package genai

import (
	"fmt"
	"strings"
)

// IdeaPrompt builds the instruction for generating count business ideas in
// the given niche. The model is asked to answer with a JSON array so the
// response can be machine-parsed; ParseIdeas handles the answer.
func IdeaPrompt(niche string, hashtags []string, customPrompt string, count int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate %d unique SaaS business ideas for the %s niche", count, niche)
	if len(hashtags) > 0 {
		fmt.Fprintf(&b, " incorporating these hashtags: %s", strings.Join(hashtags, ", "))
	}
	b.WriteString(".\n\n")

	if custom := strings.TrimSpace(customPrompt); custom != "" {
		fmt.Fprintf(&b, "Additional requirements from the user: %s\n\n", custom)
	}

	fmt.Fprintf(&b, `Respond with a JSON array of exactly %d objects, each containing:
- businessName: a unique, catchy name for the business
- description: a detailed description (100-150 words) explaining the idea, target audience, and value proposition
- niche: the niche category
- hashtags: an array of relevant hashtags (include the provided ones if any, plus additional relevant ones)

Make sure every idea is innovative, practical, and addresses real market needs in the %s space.`, count, niche)

	return b.String()
}

// CodingPrompt builds the long-form instruction that asks for a structured
// implementation guide for one idea. The response is returned to the user as
// raw text; no parsing is applied.
func CodingPrompt(businessName, description string) string {
	return fmt.Sprintf(`Create a comprehensive coding prompt for building "%s" - %s

Please provide a detailed development guide including:

1. **Project Overview**
   - Brief summary of the application
   - Target audience and use cases

2. **Recommended Tech Stack**
   - Frontend, backend, authentication, and database choices
   - Additional libraries and tools

3. **Key Features to Implement**
   - List of core features (prioritized)
   - User authentication and management
   - Main functionality specific to this SaaS

4. **Database Schema**
   - Tables and relationships needed
   - Key fields for each table

5. **Basic Implementation Steps**
   - Step-by-step development approach
   - Key components to build
   - API endpoints needed

6. **Code Snippets**
   - Example components
   - API route examples
   - Database queries

7. **Deployment Guide**
   - Recommended hosting platforms
   - Environment variables setup
   - CI/CD considerations

Make this practical and actionable for a developer to start building immediately.`, businessName, description)
}
