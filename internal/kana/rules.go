package kana

import "strings"

// Phoneme symbols shared with OpenJTalk full-context labels.
const (
	Silence = "sil"
	Pause   = "pau"
	Closure = "cl"
	Moraic  = "N"
)

// moraTable maps katakana spellings to phonemes. Two-rune keys cover
// contracted sounds and loanword spellings and are tried first.
var moraTable = map[string][]string{
	"ア": {"a"}, "イ": {"i"}, "ウ": {"u"}, "エ": {"e"}, "オ": {"o"},
	"ァ": {"a"}, "ィ": {"i"}, "ゥ": {"u"}, "ェ": {"e"}, "ォ": {"o"},

	"カ": {"k", "a"}, "キ": {"k", "i"}, "ク": {"k", "u"}, "ケ": {"k", "e"}, "コ": {"k", "o"},
	"キャ": {"ky", "a"}, "キュ": {"ky", "u"}, "キェ": {"ky", "e"}, "キョ": {"ky", "o"},
	"クァ": {"kw", "a"},
	"ガ": {"g", "a"}, "ギ": {"g", "i"}, "グ": {"g", "u"}, "ゲ": {"g", "e"}, "ゴ": {"g", "o"},
	"ギャ": {"gy", "a"}, "ギュ": {"gy", "u"}, "ギェ": {"gy", "e"}, "ギョ": {"gy", "o"},
	"グァ": {"gw", "a"},

	"サ": {"s", "a"}, "シ": {"sh", "i"}, "ス": {"s", "u"}, "セ": {"s", "e"}, "ソ": {"s", "o"},
	"シャ": {"sh", "a"}, "シュ": {"sh", "u"}, "シェ": {"sh", "e"}, "ショ": {"sh", "o"},
	"スィ": {"s", "i"},
	"ザ": {"z", "a"}, "ジ": {"j", "i"}, "ズ": {"z", "u"}, "ゼ": {"z", "e"}, "ゾ": {"z", "o"},
	"ジャ": {"j", "a"}, "ジュ": {"j", "u"}, "ジェ": {"j", "e"}, "ジョ": {"j", "o"},
	"ズィ": {"z", "i"},

	"タ": {"t", "a"}, "チ": {"ch", "i"}, "ツ": {"ts", "u"}, "テ": {"t", "e"}, "ト": {"t", "o"},
	"チャ": {"ch", "a"}, "チュ": {"ch", "u"}, "チェ": {"ch", "e"}, "チョ": {"ch", "o"},
	"ティ": {"t", "i"}, "トゥ": {"t", "u"}, "テュ": {"ty", "u"},
	"ツァ": {"ts", "a"}, "ツィ": {"ts", "i"}, "ツェ": {"ts", "e"}, "ツォ": {"ts", "o"},
	"ダ": {"d", "a"}, "ヂ": {"j", "i"}, "ヅ": {"z", "u"}, "デ": {"d", "e"}, "ド": {"d", "o"},
	"ディ": {"d", "i"}, "ドゥ": {"d", "u"}, "デュ": {"dy", "u"},

	"ナ": {"n", "a"}, "ニ": {"n", "i"}, "ヌ": {"n", "u"}, "ネ": {"n", "e"}, "ノ": {"n", "o"},
	"ニャ": {"ny", "a"}, "ニュ": {"ny", "u"}, "ニェ": {"ny", "e"}, "ニョ": {"ny", "o"},

	"ハ": {"h", "a"}, "ヒ": {"h", "i"}, "フ": {"f", "u"}, "ヘ": {"h", "e"}, "ホ": {"h", "o"},
	"ヒャ": {"hy", "a"}, "ヒュ": {"hy", "u"}, "ヒェ": {"hy", "e"}, "ヒョ": {"hy", "o"},
	"ファ": {"f", "a"}, "フィ": {"f", "i"}, "フェ": {"f", "e"}, "フォ": {"f", "o"},
	"バ": {"b", "a"}, "ビ": {"b", "i"}, "ブ": {"b", "u"}, "ベ": {"b", "e"}, "ボ": {"b", "o"},
	"ビャ": {"by", "a"}, "ビュ": {"by", "u"}, "ビェ": {"by", "e"}, "ビョ": {"by", "o"},
	"パ": {"p", "a"}, "ピ": {"p", "i"}, "プ": {"p", "u"}, "ペ": {"p", "e"}, "ポ": {"p", "o"},
	"ピャ": {"py", "a"}, "ピュ": {"py", "u"}, "ピェ": {"py", "e"}, "ピョ": {"py", "o"},

	"マ": {"m", "a"}, "ミ": {"m", "i"}, "ム": {"m", "u"}, "メ": {"m", "e"}, "モ": {"m", "o"},
	"ミャ": {"my", "a"}, "ミュ": {"my", "u"}, "ミェ": {"my", "e"}, "ミョ": {"my", "o"},

	"ヤ": {"y", "a"}, "ユ": {"y", "u"}, "ヨ": {"y", "o"},
	"ャ": {"y", "a"}, "ュ": {"y", "u"}, "ョ": {"y", "o"},
	"イェ": {"y", "e"},

	"ラ": {"r", "a"}, "リ": {"r", "i"}, "ル": {"r", "u"}, "レ": {"r", "e"}, "ロ": {"r", "o"},
	"リャ": {"ry", "a"}, "リュ": {"ry", "u"}, "リェ": {"ry", "e"}, "リョ": {"ry", "o"},

	"ワ": {"w", "a"}, "ヮ": {"w", "a"}, "ヰ": {"i"}, "ヱ": {"e"}, "ヲ": {"o"},
	"ウィ": {"w", "i"}, "ウェ": {"w", "e"}, "ウォ": {"w", "o"},

	"ヴ": {"v", "u"}, "ヴァ": {"v", "a"}, "ヴィ": {"v", "i"}, "ヴェ": {"v", "e"}, "ヴォ": {"v", "o"},
	"ヴュ": {"by", "u"},

	"ン": {Moraic},
	"ッ": {Closure},
}

// pauseMarks are punctuation characters read as a short pause.
const pauseMarks = "、。，,.・；;：:？?！!…‥「」『』（）()"

// voiceless consonants condition vowel devoicing.
var voiceless = map[string]bool{
	"k": true, "ky": true, "kw": true,
	"s": true, "sh": true,
	"t": true, "ty": true, "ch": true, "ts": true,
	"h": true, "hy": true, "f": true,
	"p": true, "py": true,
}

func isVowel(p string) bool {
	switch p {
	case "a", "i", "u", "e", "o":
		return true
	}
	return false
}

// toKatakana shifts hiragana into the katakana block and leaves every other
// rune unchanged.
func toKatakana(s string) string {
	return strings.Map(toKatakanaRune, s)
}

func toKatakanaRune(r rune) rune {
	if 'ぁ' <= r && r <= 'ゖ' {
		return r + ('ァ' - 'ぁ')
	}
	return r
}

func isKatakana(r rune) bool {
	return ('ァ' <= r && r <= 'ヺ') || r == 'ー'
}

// devoice uppercases close vowels between voiceless consonants, and at the
// end of a phrase after a voiceless consonant.
func devoice(tokens []string) {
	for i := 1; i < len(tokens); i++ {
		if tokens[i] != "i" && tokens[i] != "u" {
			continue
		}
		if !voiceless[tokens[i-1]] {
			continue
		}
		next := ""
		if i+1 < len(tokens) {
			next = tokens[i+1]
		}
		if voiceless[next] || next == Pause || next == Silence {
			tokens[i] = strings.ToUpper(tokens[i])
		}
	}
}
