/*
Package dumbconf parses, edits and writes the dumbconf configuration
language. The API mirrors the standard encoding/json package where it can,
and adds a full-fidelity editing mode that the data-oriented functions do
not provide.

The package offers two workflows depending on the use case:

1. Data-Oriented Decoding and Encoding

For converting dumbconf data into Go values (and vice versa), Marshal and
Unmarshal provide a direct API. This path is optimized for data extraction
and does not preserve comments or formatting:

	var data = []byte("name: \"demo\"\nretries: 3\n")

	type Config struct {
		Name    string `dumbconf:"name"`
		Retries int    `dumbconf:"retries"`
	}

	var cfg Config
	if err := dumbconf.Unmarshal(data, &cfg); err != nil {
		// handle error
	}

Because dumbconf maps are ordered and Go maps are not, decoding into an
untyped value (*any) produces the order-preserving Map type rather than a
map[string]any.

2. Full-Fidelity Round-Trip Editing

Parse returns a Document that retains every byte of the input: comments,
blank lines, quote styles, comma placement. Values are addressed by path
and edited surgically; everything not directly touched by an edit is
reproduced exactly:

	doc, err := dumbconf.Parse([]byte("a: {b: 1, c: 2}  # tuning\n"))
	if err != nil {
		// handle error
	}
	if err := doc.At("a", "b").Set(9); err != nil {
		// handle error
	}
	// doc.Bytes() is now "a: {b: 9, c: 2}  # tuning\n"

Edits are all-or-nothing and views returned by At share one document: a
write through any view is visible through all of them. A Document must not
be mutated concurrently.
*/
package dumbconf
