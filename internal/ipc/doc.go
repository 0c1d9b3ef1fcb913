/*
Package ipc serves the word engine over a binary stdio transport.

Each request is one msgpack value read from the input stream and each
response is one msgpack value written to the output stream, so a host
process (an editor plugin or a native AAC front end) can drive the engine
without HTTP. Requests carry an id that is echoed on the response.

Supported ops:

	words           next-word candidates for the session
	refresh         replacement candidates, served from the cache when fresh
	generate_cache  compute alternatives in the background slot
	cache           cached alternatives and used words
	clear_used      start a new sentence
	reset_branch    regenerate the lookahead branch for a first word
	health          predictor readiness

The server answers with a ready frame (status "ready") before reading the
first request.
*/
package ipc
