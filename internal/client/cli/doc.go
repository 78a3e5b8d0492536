// Package cli implements mddctl, an interactive terminal client of the MDD
// API. It reads commands line by line, prompts for their arguments and
// prints results in plain text. The session token lives in memory only.
package cli
