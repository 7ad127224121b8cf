// Package services contains the core application logic: the dispatch
// table mapping format pairs to capabilities, and the conversion
// orchestrator that runs each request through resolve, convert, stage,
// publish, and cleanup.
package services
