// Package summarizer turns a raw conversation transcript into a
// session-log draft: topic, keywords, projects, outcome, and summary
// body. The core archive only consumes the finished draft; drafting
// itself is an external capability with an OpenAI-backed
// implementation and a deterministic heuristic fallback for offline
// use and tests.
package summarizer
