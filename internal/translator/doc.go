// Package translator provides recipe translation with imperial to metric
// unit conversion through interchangeable backends. The cloud variants
// (OpenAI, Gemini) translate field by field over chat completions, the
// local variant (Ollama) translates the whole recipe as one JSON document.
// A factory selects the provider from configuration and fails fast when
// it is misconfigured or unreachable.
package translator
