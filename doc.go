// Package txt2pdf converts plain text documents marked up with dot
// directives into styled PDF files using headless Chrome.
//
// # Documents
//
// A document is a sequence of lines. Lines starting with a dot are
// directives; every other line is text appended to the current paragraph.
// Empty and whitespace-only lines are dropped before formatting.
//
//	.large          large font for the following text
//	.normal         normal font
//	.bold           bold text
//	.italics        italic text
//	.regular        neither bold nor italic
//	.fill           justify paragraphs
//	.nofill         left-align paragraphs
//	.indent N       shift the indent level by N, kept within [0, 8]
//	.paragraph      start a new paragraph
//
// .paragraph, .fill, .large, .normal and .indent close the current
// paragraph. .bold, .italics, .regular and .nofill do not.
//
// # Quick Start
//
//	conv, err := txt2pdf.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, txt2pdf.Input{
//	    Text: ".large\nTitle\n.normal\n.fill\nBody text.",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.pdf", result.PDF, 0644)
//
// The result also carries the formatted paragraphs and the intermediate
// HTML. Input.HTMLOnly skips the browser; Converter.Preview renders the
// document as wrapped terminal text instead.
//
// # Configuration
//
//	conv, err := txt2pdf.NewConverter(
//	    txt2pdf.WithTimeout(2 * time.Minute),
//	    txt2pdf.WithStyle("serif"),
//	    txt2pdf.WithAssetPath("/path/to/assets"),
//	    txt2pdf.WithLayout(txt2pdf.Layout{NormalSize: 12, LargeSize: 22, IndentWidth: 18}),
//	)
//
// The asset directory overrides built-in styles with styles/{name}.css.
//
// # Parallel Processing
//
// Converters are not safe for concurrent use. A ConverterPool manages one
// converter, and one browser, per worker:
//
//	pool := txt2pdf.NewConverterPool(txt2pdf.ResolvePoolSize(0))
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
//
// # Browser
//
// Rod downloads Chromium on first use. Set ROD_BROWSER_BIN to use an
// installed browser and ROD_NO_SANDBOX=1 in containers.
package txt2pdf
