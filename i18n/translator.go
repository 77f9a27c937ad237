package i18n

import (
	"strings"
	"sync"
)

// Message ids used by the transcoder. Templates may reference {op}, {type},
// {key} and {cause}.
const (
	MsgTypeMismatch          = "type_mismatch"
	MsgValueMismatch         = "value_mismatch"
	MsgNotAString            = "not_a_string"
	MsgNoneMatched           = "none_matched"
	MsgObjectExpected        = "object_expected"
	MsgArrayExpected         = "array_expected"
	MsgWrongElementCount     = "wrong_element_count"
	MsgDiscriminatorExpected = "discriminator_expected"
	MsgDiscriminatorNotStr   = "discriminator_not_string"
	MsgMissingProperty       = "missing_property"
	MsgUnknownProperty       = "unknown_property"
	MsgUnknownException      = "unknown_exception"
	MsgInvalidFormat         = "invalid_format"
	MsgRuleViolation         = "rule_violation"
)

// Translator retrieves localized messages for message ids.
// data provides values substituted into {placeholders}.
type Translator interface {
	Message(id string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var en = map[string]string{
	MsgTypeMismatch:          "Failed to {op} {type} - type mismatch",
	MsgValueMismatch:         "Failed to {op} {type} - value mismatch",
	MsgNotAString:            "Failed to {op} {type} - value is not a string",
	MsgNoneMatched:           "Failed to {op} {type} - none matched",
	MsgObjectExpected:        "Failed to {op} {type} - object expected",
	MsgArrayExpected:         "Failed to {op} {type} - array expected",
	MsgWrongElementCount:     "Failed to {op} {type} - wrong element count",
	MsgDiscriminatorExpected: "Failed to {op} {type} - object with discriminator expected",
	MsgDiscriminatorNotStr:   "Failed to {op} {type} - discriminator is not a string",
	MsgMissingProperty:       "Missing property {key}",
	MsgUnknownProperty:       "Unknown property {key}",
	MsgUnknownException:      "Unknown exception: {cause}",
	MsgInvalidFormat:         "Failed to {op} {type} - invalid format",
	MsgRuleViolation:         "Failed to {op} {type} - {cause}",
}

var ja = map[string]string{
	MsgTypeMismatch:          "{type} の{op}に失敗しました - 型が不正です",
	MsgValueMismatch:         "{type} の{op}に失敗しました - 値が一致しません",
	MsgNotAString:            "{type} の{op}に失敗しました - 文字列ではありません",
	MsgNoneMatched:           "{type} の{op}に失敗しました - 一致する候補がありません",
	MsgObjectExpected:        "{type} の{op}に失敗しました - オブジェクトが必要です",
	MsgArrayExpected:         "{type} の{op}に失敗しました - 配列が必要です",
	MsgWrongElementCount:     "{type} の{op}に失敗しました - 要素数が不正です",
	MsgDiscriminatorExpected: "{type} の{op}に失敗しました - 判別キーが必要です",
	MsgDiscriminatorNotStr:   "{type} の{op}に失敗しました - 判別キーが文字列ではありません",
	MsgMissingProperty:       "必須プロパティ {key} が不足しています",
	MsgUnknownProperty:       "未知のプロパティ {key} です",
	MsgUnknownException:      "不明な例外: {cause}",
	MsgInvalidFormat:         "{type} の{op}に失敗しました - 形式が不正です",
	MsgRuleViolation:         "{type} の{op}に失敗しました - {cause}",
}

var jaOps = map[string]string{"decode": "デコード", "encode": "エンコード"}

func (t dictTranslator) Message(id string, data map[string]string) string {
	table := en
	if t.lang == "ja" {
		table = ja
		if op, ok := data["op"]; ok {
			if tr, ok := jaOps[op]; ok {
				data = withOp(data, tr)
			}
		}
	}
	tpl, ok := table[id]
	if !ok {
		return id
	}
	return expand(tpl, data)
}

func withOp(data map[string]string, op string) map[string]string {
	out := make(map[string]string, len(data))
	for k, v := range data {
		out[k] = v
	}
	out["op"] = op
	return out
}

func expand(tpl string, data map[string]string) string {
	if len(data) == 0 || strings.IndexByte(tpl, '{') < 0 {
		return tpl
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tpl)
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
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given id using the current Translator.
func T(id string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(id, data)
}
