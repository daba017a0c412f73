// Package cli implements the command-line interface for cga-events.
//
// The cli package provides the Cobra-based command that wires configuration, logging,
// metrics, the scraper session and the calendar store into a single pipeline run, and
// reports the outcome as text or JSON. Run with no arguments it scrapes the next 14
// days and writes cga.ics in the working directory.
package cli
