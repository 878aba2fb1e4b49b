// Package format interprets the directive language of txt2pdf documents.
//
// A document is a sequence of non-empty lines. Lines starting with "." are
// directives that change the format state; every other line is literal
// text. Directives:
//
//	.indent N   shift the indent by N levels (clamped to 0..8)
//	.fill       justify following paragraphs
//	.nofill     left-align following paragraphs
//	.regular    regular text
//	.bold       bold text
//	.italics    italic text
//	.large      large text
//	.normal     normal-size text
//	.paragraph  start a new paragraph
//
// Unknown directives are ignored. The .paragraph, .indent, .fill, .large
// and .normal directives also close the paragraph being built; the style
// directives and .nofill do not.
//
// Builder applies these rules line by line and produces Paragraph values
// for a renderer. Fonts and margins are resolved through a Layout.
package format
