// Package shellsyntax implements the dangerous-shell-syntax scanner and
// safe-encapsulation checker (spec §4.8/§4.9, components C8): the set of
// characters, commands, and path prefixes that make a shell string worth
// flagging, plus the quote-boundary check that can rule a hole back out.
package shellsyntax

// dangerousChars is the 26-entry punctuation set from spec §4.8 that a
// shell can interpret as metacharacters or whitespace separators.
var dangerousChars = map[rune]bool{
	'#': true, '!': true, '"': true, '$': true, '&': true, '\'': true,
	'(': true, ')': true, '*': true, ';': true, '<': true, '=': true,
	'>': true, '?': true, '[': true, '\\': true, ']': true, '^': true,
	'`': true, '{': true, '|': true, '}': true, ' ': true, '\n': true,
	'\t': true, '~': true,
}

// commands is the 61-entry list of binaries whose bare invocation is
// worth flagging even without other dangerous punctuation present.
var commands = []string{
	"sleep", "shutdown", "reboot", "poweroff", "halt", "ifconfig", "chmod",
	"chown", "ping", "ssh", "scp", "curl", "wget", "telnet", "kill",
	"killall", "rm", "mv", "cp", "touch", "echo", "cat", "head", "tail",
	"grep", "find", "awk", "sed", "sort", "uniq", "wc", "ls", "env", "ps",
	"who", "whoami", "id", "w", "df", "du", "pwd", "uname", "hostname",
	"netstat", "passwd", "arch", "printenv", "logname", "pstree",
	"hostnamectl", "set", "lsattr", "killall5", "dmesg", "history",
	"free", "uptime", "finger", "top", "shopt", ":",
}

// pathPrefixes is the set of directories a dangerous command name may be
// invoked through by absolute or relative path.
var pathPrefixes = []string{
	"/bin/", "/sbin/", "/usr/bin/", "/usr/sbin/", "/usr/local/bin/", "/usr/local/sbin/",
}

// separators bound a command match: a dangerous command name must start
// and end at one of these, or at the start/end of the string.
var separators = map[rune]bool{
	' ': true, '\t': true, '\n': true, ';': true, '&': true, '|': true,
	'(': true, ')': true, '<': true, '>': true,
}
