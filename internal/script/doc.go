// Package script interprets the image processor's command language.
//
// A script is a sequence of lines, one command per line. Commands load and
// save files and run catalogue operations against named images held in an
// imaging.Store:
//
//	load images/koala.ppm koala
//	brighten koala 10 koala-brighter
//	blur koala koala-mask koala-blurred
//	downscale 0.5 0.5 koala koala-small
//	save out/koala-small.png koala-small
//	q
//
// Each line is parsed into an imaging.Operation value, so every command word
// maps onto a typed operation rather than a string-keyed callback. Failures
// are reported on the output writer; with Runner.Strict the first failure
// stops the script.
package script
