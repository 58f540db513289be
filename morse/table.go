// Copyright 2025 The morsed authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package morse

import (
	"unicode"
)

// table maps every supported character to its code (ITU alphabet,
// letters and digits only). Keys are upper case; Lookup normalizes.
var table = map[rune]Code{
	'A': {Dot, Dash},
	'B': {Dash, Dot, Dot, Dot},
	'C': {Dash, Dot, Dash, Dot},
	'D': {Dash, Dot, Dot},
	'E': {Dot},
	'F': {Dot, Dot, Dash, Dot},
	'G': {Dash, Dash, Dot},
	'H': {Dot, Dot, Dot, Dot},
	'I': {Dot, Dot},
	'J': {Dot, Dash, Dash, Dash},
	'K': {Dash, Dot, Dash},
	'L': {Dot, Dash, Dot, Dot},
	'M': {Dash, Dash},
	'N': {Dash, Dot},
	'O': {Dash, Dash, Dash},
	'P': {Dot, Dash, Dash, Dot},
	'Q': {Dash, Dash, Dot, Dash},
	'R': {Dot, Dash, Dot},
	'S': {Dot, Dot, Dot},
	'T': {Dash},
	'U': {Dot, Dot, Dash},
	'V': {Dot, Dot, Dot, Dash},
	'W': {Dot, Dash, Dash},
	'X': {Dash, Dot, Dot, Dash},
	'Y': {Dash, Dot, Dash, Dash},
	'Z': {Dash, Dash, Dot, Dot},
	'0': {Dash, Dash, Dash, Dash, Dash},
	'1': {Dot, Dash, Dash, Dash, Dash},
	'2': {Dot, Dot, Dash, Dash, Dash},
	'3': {Dot, Dot, Dot, Dash, Dash},
	'4': {Dot, Dot, Dot, Dot, Dash},
	'5': {Dot, Dot, Dot, Dot, Dot},
	'6': {Dash, Dot, Dot, Dot, Dot},
	'7': {Dash, Dash, Dot, Dot, Dot},
	'8': {Dash, Dash, Dash, Dot, Dot},
	'9': {Dash, Dash, Dash, Dash, Dot},
}

// Lookup returns the code for the given character, accepting lower
// case letters. Characters outside the alphabet return the zero Code;
// the caller decides whether to skip or reject them. The returned
// code is a copy; the table itself is never handed out.
func Lookup(r rune) Code {
	return append(Code(nil), table[unicode.ToUpper(r)]...)
}
