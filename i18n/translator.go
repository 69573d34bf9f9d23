package i18n

import "sync"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "field" or "expected").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "missing_required_field":
			return withField("必須フィールドが不足しています", data)
		case "type_mismatch":
			return "型が一致しません"
		case "unknown_key":
			return "未知のキーです"
		case "duplicate_key":
			return "キーが重複しています"
		case "parse_error":
			return "解析エラー"
		case "truncated":
			return "打ち切られました"
		case "unknown_field":
			return "未定義のフィールドです"
		case "not_generated":
			return "この操作は生成されていません"
		case "immutable":
			return "レコードは不変です"
		case "invalid_spec":
			return "レコード定義が不正です"
		}
	default: // "en"
		switch code {
		case "missing_required_field":
			return withField("required field missing", data)
		case "type_mismatch":
			if data["expected"] != "" {
				return "type mismatch: expected " + data["expected"] + ", got " + data["got"]
			}
			return "type mismatch"
		case "unknown_key":
			return "unknown key"
		case "duplicate_key":
			return "duplicate key"
		case "parse_error":
			return "parse error"
		case "truncated":
			return "truncated"
		case "unknown_field":
			return "unknown field"
		case "not_generated":
			return "operation not generated for this record"
		case "immutable":
			return "record is immutable"
		case "invalid_spec":
			return "invalid record spec"
		}
	}
	return code
}

func withField(msg string, data map[string]string) string {
	if f := data["field"]; f != "" {
		return msg + ": " + f
	}
	return msg
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). nil restores English.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
