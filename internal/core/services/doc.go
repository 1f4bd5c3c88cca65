// Package services contains the core business logic of the knowledge
// assistant: ingestion, retrieval and answer generation.
//
// Services implement the driving port interfaces and depend only on the
// driven port interfaces, never on concrete adapters.
package services
