// Package eventfile reads corpora and writes event files. A corpus is a
// plain UTF-8 text file with one utterance per line, streamed and never
// held in memory. The event file is gzip-compressed with one
// tab-separated "cues\toutcomes" record per surviving line; lines whose
// event is empty are omitted rather than written blank. Build wires the
// corpus reader, the parallel pipeline and the writer together and prints
// advisory progress.
package eventfile
