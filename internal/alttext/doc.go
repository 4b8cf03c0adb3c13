// Package alttext implements the behavior behind the server's three tools:
// alt text suggestion generation, accessibility context analysis, and alt
// text quality validation.
//
// Generation and analysis run through the vision capability seams
// (vision.Captioner and vision.Analyzer) so the same Generator serves both
// the fixture configuration used in tests and a production configuration
// backed by a real vision API. Quality validation is pure arithmetic over
// the supplied text and needs no collaborators.
//
// Faults inside generation never escape as errors; they are folded into the
// standardized AnalysisResult error envelope (success:false, an error
// string, and a single fallback suggestion) so tools/call on a known tool
// always yields a well-formed result.
package alttext
