// Package pipeline turns formatted paragraphs into output documents.
//
// It covers the stages between the format package and the PDF renderer:
//   - paragraphs to a standalone HTML5 document (ParagraphRenderer)
//   - stylesheet injection into that document (CSSInjection)
//   - paragraphs to wrapped terminal text for previews (TextRenderer)
//
// PDF generation lives in the root txt2pdf package, which drives headless
// Chrome through go-rod.
package pipeline
