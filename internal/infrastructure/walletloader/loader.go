package walletloader

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"wallet_tracker/internal/domain/entity"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Keys accepted for each field of an object item, in priority order.
var (
	walletKeys = []string{"wallet", "address"}
	chainKeys  = []string{"chain"}
	windowKeys = []string{"daysOption", "reportingWindow", "days", "period"}
)

// LoadWallets reads wallet requests from a file. The format follows the extension:
// .txt holds one address per line, .yaml/.yml a YAML list, anything else a JSON array.
func LoadWallets(path string) ([]entity.WalletRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read wallet file %s: %w", path, err)
	}

	var requests []entity.WalletRequest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		requests, err = ParseText(bytes.NewReader(data))
	case ".yaml", ".yml":
		requests, err = ParseYAML(data)
	default:
		requests, err = ParseJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse wallet file %s: %w", path, err)
	}
	return requests, nil
}

// ParseJSON decodes a JSON array of wallet items.
func ParseJSON(data []byte) ([]entity.WalletRequest, error) {
	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	return fromRoot(root)
}

// ParseYAML decodes a YAML sequence of wallet items.
func ParseYAML(data []byte) ([]entity.WalletRequest, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	root, err := nodeValue(&doc)
	if err != nil {
		return nil, err
	}
	return fromRoot(root)
}

// nodeValue converts a YAML node into plain values. Unquoted hex scalars such as
// 0x000000000000000000000000000000000000dEaD stay strings instead of resolving to integers.
func nodeValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return nodeValue(n.Content[0])
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	case yaml.SequenceNode:
		items := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := nodeValue(c)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := nodeValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m[n.Content[i].Value] = v
		}
		return m, nil
	case yaml.ScalarNode:
		if n.ShortTag() == "!!int" && isHexLiteral(n.Value) {
			return n.Value, nil
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	}
	return nil, fmt.Errorf("line %d: unsupported YAML node", n.Line)
}

func isHexLiteral(s string) bool {
	return len(s) > 2 && (strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"))
}

// ParseText reads one address per line. Blank lines and lines starting with # are skipped.
func ParseText(r io.Reader) ([]entity.WalletRequest, error) {
	var requests []entity.WalletRequest
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		requests = append(requests, entity.WalletRequest{Raw: line, Wallet: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning wallet list: %w", err)
	}
	return requests, nil
}

func fromRoot(root any) ([]entity.WalletRequest, error) {
	items, ok := root.([]any)
	if !ok {
		return nil, fmt.Errorf("wallet list must be an array of wallet objects, got %T", root)
	}
	requests := make([]entity.WalletRequest, 0, len(items))
	for _, item := range items {
		requests = append(requests, FromItem(item))
	}
	return requests, nil
}

// FromItem normalizes one decoded item. Supported shapes are a bare address string and
// an object such as {"wallet": "...", "chain": "sol", "daysOption": "7d"}.
func FromItem(item any) entity.WalletRequest {
	switch v := item.(type) {
	case string:
		return entity.WalletRequest{Raw: v, Wallet: strings.TrimSpace(v)}
	case map[string]any:
		return entity.WalletRequest{
			Raw:    render(v),
			Wallet: strings.TrimSpace(firstString(v, walletKeys)),
			Chain:  strings.TrimSpace(firstString(v, chainKeys)),
			Window: strings.TrimSpace(firstString(v, windowKeys)),
		}
	default:
		return entity.WalletRequest{
			Raw:      fmt.Sprintf("%v", item),
			ParseErr: fmt.Errorf("wallet item must be a string or object, got %T", item),
		}
	}
}

func firstString(m map[string]any, keys []string) string {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		var s string
		switch t := v.(type) {
		case string:
			s = t
		case float64:
			s = strconv.FormatFloat(t, 'f', -1, 64)
		case int:
			s = strconv.Itoa(t)
		default:
			s = fmt.Sprintf("%v", t)
		}
		if s != "" {
			return s
		}
	}
	return ""
}

func render(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
