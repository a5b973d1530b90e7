// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ConfigStore: Application configuration
//   - PromptStore: Prompt templates for the AI flows
//   - FloatStore: Float dataset persistence
//   - ReportRenderer: Turns report content into a downloadable document
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Language model operations. Without it, every AI flow fails
//     with ErrLLMUnavailable and only canned answers and datasets work.
//   - ResearchClient: External research backend. Without it, deeper mode
//     fails with ErrResearchUnavailable.
//   - SnapshotRenderer: Dashboard rasterizer.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
