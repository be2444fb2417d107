package layout

// DefaultSentinel 是找不到译词时使用的占位符。
const DefaultSentinel = "-"

// Translation 是原词到译词的精确匹配查找表，构造后不再修改。
// 键区分大小写并包含词尾标点。
type Translation struct {
	entries  map[string]string
	sentinel string
}

// NewTranslation 复制 entries 并构造查找表；sentinel 为空时使用 DefaultSentinel。
func NewTranslation(entries map[string]string, sentinel string) *Translation {
	if sentinel == "" {
		sentinel = DefaultSentinel
	}
	copied := make(map[string]string, len(entries))
	for k, v := range entries {
		copied[k] = v
	}
	return &Translation{entries: copied, sentinel: sentinel}
}

// Lookup 返回 word 的译词以及是否存在映射。
func (t *Translation) Lookup(word string) (string, bool) {
	if t == nil {
		return "", false
	}
	v, ok := t.entries[word]
	return v, ok
}

// Resolve 与 Lookup 相同，但未命中时返回占位符。
func (t *Translation) Resolve(word string) (string, bool) {
	if v, ok := t.Lookup(word); ok {
		return v, true
	}
	return t.Sentinel(), false
}

// Sentinel 返回占位符。
func (t *Translation) Sentinel() string {
	if t == nil {
		return DefaultSentinel
	}
	return t.sentinel
}

// Len 返回映射条目数。
func (t *Translation) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}
