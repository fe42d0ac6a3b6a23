// Package ollama implements backend.Client against the Ollama HTTP API.
// It translates generation calls into /api/generate requests, decodes
// the newline-delimited JSON stream into chunks, and maps transport and
// HTTP failures onto the backend error taxonomy.
package ollama
