package terminal

// keypadKeys maps keyboard bytes to keypad indices, the same 1234/qwer/
// asdf/zxcv layout the SDL front end uses. Quitting is on Escape rather
// than q, which is keypad key 4 here.
var keypadKeys = map[byte]int{
	'x': 0x0,
	'1': 0x1,
	'2': 0x2,
	'3': 0x3,
	'q': 0x4,
	'w': 0x5,
	'e': 0x6,
	'a': 0x7,
	's': 0x8,
	'd': 0x9,
	'z': 0xA,
	'c': 0xB,
	'4': 0xC,
	'r': 0xD,
	'f': 0xE,
	'v': 0xF,
}

// keyFor resolves a keyboard byte to a keypad key, accepting both cases.
func keyFor(c byte) (int, bool) {
	if c >= 'A' && c <= 'Z' {
		c += 'a' - 'A'
	}
	k, ok := keypadKeys[c]
	return k, ok
}
