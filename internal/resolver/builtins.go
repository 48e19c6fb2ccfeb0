package resolver

import "strings"

var nodeBuiltins = map[string]struct{}{
	"assert": {}, "async_hooks": {}, "buffer": {}, "child_process": {},
	"cluster": {}, "console": {}, "constants": {}, "crypto": {},
	"dgram": {}, "diagnostics_channel": {}, "dns": {}, "domain": {},
	"events": {}, "fs": {}, "http": {}, "http2": {}, "https": {},
	"inspector": {}, "module": {}, "net": {}, "os": {}, "path": {},
	"perf_hooks": {}, "process": {}, "punycode": {}, "querystring": {},
	"readline": {}, "repl": {}, "stream": {}, "string_decoder": {},
	"sys": {}, "timers": {}, "tls": {}, "trace_events": {}, "tty": {},
	"url": {}, "util": {}, "v8": {}, "vm": {}, "wasi": {},
	"worker_threads": {}, "zlib": {},
}

// IsBuiltin reports whether specifier names a node core module, with or
// without the "node:" scheme. Subpaths such as "fs/promises" count.
func IsBuiltin(specifier string) bool {
	if hasNodeScheme(specifier) {
		return true
	}
	name, _, _ := strings.Cut(specifier, "/")
	_, ok := nodeBuiltins[name]
	return ok
}

func hasNodeScheme(specifier string) bool {
	return strings.HasPrefix(specifier, "node:")
}
