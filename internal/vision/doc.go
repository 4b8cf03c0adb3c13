// Package vision defines the capability seams between the alt-text tools
// and the underlying image understanding, plus the implementations of each.
//
// # Captioner
//
// A Captioner produces ranked caption candidates for an image given a
// context prompt. Two implementations exist:
//
//   - MockCaptioner returns the fixed suggestion sets the tool contract is
//     tested against. It branches only on the page-context lines embedded
//     in the prompt (product/ecommerce pages vs everything else) and never
//     inspects image bytes.
//   - OpenAICaptioner calls an OpenAI-compatible chat-completions endpoint
//     with the image attached by URL or as a base64 data URL.
//
// # Analyzer
//
// An Analyzer produces the accessibility analysis block. StaticAnalyzer
// returns the fixed analysis the tools are tested against. ImageAnalyzer
// derives the same fields from pixel data: color spread for the decorative
// heuristic, edge density for visual complexity, and OCR (when built with
// cgo on Linux) for text presence.
//
// Production deployments are expected to wire OpenAICaptioner and
// ImageAnalyzer; the mock pair exists for tests and offline use.
package vision
