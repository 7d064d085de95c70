package translation

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
)

// englishJapanese covers the high-frequency words and phrases that show up in
// conversational video subtitles. It is a last-resort glossary, not a
// translator: output quality is word-by-word, but a learner still gets a
// usable gloss when every network provider is down.
var englishJapanese = map[string]string{
	"thank you very much": "どうもありがとうございます",
	"nice to meet you":    "はじめまして",
	"see you later":       "またね",
	"how are you":         "お元気ですか",
	"of course":           "もちろん",
	"thank you":           "ありがとう",
	"excuse me":           "すみません",
	"good morning":        "おはようございます",
	"good evening":        "こんばんは",
	"good night":          "おやすみなさい",
	"good luck":           "頑張って",
	"i'm sorry":           "ごめんなさい",
	"let's go":            "行きましょう",
	"welcome":             "ようこそ",
	"hello":               "こんにちは",
	"hi":                  "やあ",
	"goodbye":             "さようなら",
	"yes":                 "はい",
	"no":                  "いいえ",
	"please":              "お願いします",
	"sorry":               "ごめん",
	"today":               "今日",
	"tomorrow":            "明日",
	"yesterday":           "昨日",
	"now":                 "今",
	"later":               "後で",
	"always":              "いつも",
	"never":               "決して",
	"sometimes":           "時々",
	"morning":             "朝",
	"night":               "夜",
	"time":                "時間",
	"day":                 "日",
	"week":                "週",
	"month":               "月",
	"year":                "年",
	"people":              "人々",
	"person":              "人",
	"friend":              "友達",
	"family":              "家族",
	"teacher":             "先生",
	"student":             "学生",
	"school":              "学校",
	"work":                "仕事",
	"home":                "家",
	"house":               "家",
	"world":               "世界",
	"country":             "国",
	"city":                "都市",
	"water":               "水",
	"food":                "食べ物",
	"money":               "お金",
	"book":                "本",
	"music":               "音楽",
	"movie":               "映画",
	"video":               "動画",
	"language":            "言語",
	"english":             "英語",
	"japanese":            "日本語",
	"japan":               "日本",
	"important":           "重要",
	"interesting":         "面白い",
	"difficult":           "難しい",
	"easy":                "簡単",
	"new":                 "新しい",
	"old":                 "古い",
	"big":                 "大きい",
	"small":               "小さい",
	"good":                "良い",
	"bad":                 "悪い",
	"beautiful":           "美しい",
	"happy":               "幸せ",
	"sad":                 "悲しい",
	"delicious":           "美味しい",
	"many":                "多くの",
	"very":                "とても",
	"really":              "本当に",
	"maybe":               "たぶん",
	"go":                  "行く",
	"come":                "来る",
	"see":                 "見る",
	"watch":               "見る",
	"listen":              "聞く",
	"speak":               "話す",
	"talk":                "話す",
	"say":                 "言う",
	"eat":                 "食べる",
	"drink":               "飲む",
	"think":               "思う",
	"know":                "知る",
	"understand":          "分かる",
	"learn":               "学ぶ",
	"study":               "勉強する",
	"like":                "好き",
	"love":                "愛",
	"want":                "欲しい",
	"make":                "作る",
	"help":                "助ける",
}

type dictionaryEntry struct {
	pattern     *regexp.Regexp
	replacement string
}

var (
	dictionaryOnce    sync.Once
	dictionaryEntries []dictionaryEntry
)

// compiledDictionary returns the glossary ordered longest phrase first, so
// "thank you very much" wins over "thank you".
func compiledDictionary() []dictionaryEntry {
	dictionaryOnce.Do(func() {
		phrases := make([]string, 0, len(englishJapanese))
		for phrase := range englishJapanese {
			phrases = append(phrases, phrase)
		}
		sort.Slice(phrases, func(i, j int) bool {
			if len(phrases[i]) != len(phrases[j]) {
				return len(phrases[i]) > len(phrases[j])
			}
			return phrases[i] < phrases[j]
		})

		dictionaryEntries = make([]dictionaryEntry, 0, len(phrases))
		for _, phrase := range phrases {
			pattern := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(phrase) + `\b`)
			dictionaryEntries = append(dictionaryEntries, dictionaryEntry{
				pattern:     pattern,
				replacement: englishJapanese[phrase],
			})
		}
	})
	return dictionaryEntries
}

// DictionaryProvider is the offline terminal rung of the cascade. It only
// handles English to Japanese and succeeds when at least one glossary phrase
// matched, leaving unmatched words untouched.
type DictionaryProvider struct{}

// NewDictionaryProvider creates the offline glossary provider
func NewDictionaryProvider() *DictionaryProvider {
	return &DictionaryProvider{}
}

// Name implements Provider
func (d *DictionaryProvider) Name() string {
	return "dictionary"
}

// Translate implements Provider
func (d *DictionaryProvider) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if !isEnglishSource(sourceLang) || !isJapaneseTag(targetLang) {
		return "", fmt.Errorf("dictionary only covers english to japanese")
	}

	result := text
	matched := false
	for _, entry := range compiledDictionary() {
		if entry.pattern.MatchString(result) {
			result = entry.pattern.ReplaceAllString(result, entry.replacement)
			matched = true
		}
	}

	if !matched {
		return "", fmt.Errorf("no glossary phrase matched")
	}
	return result, nil
}

func isEnglishSource(tag string) bool {
	switch {
	case tag == "" || tag == "auto":
		return true
	default:
		return strings.HasPrefix(strings.ToLower(tag), "en")
	}
}

func isJapaneseTag(tag string) bool {
	return strings.HasPrefix(strings.ToLower(tag), "ja")
}
