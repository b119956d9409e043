package cty

import (
	"fmt"
	"strings"
)

// SplitAliasLine breaks a custom-alias fragment of the form
//
//	entity_name, token[,token...]
//
// into the entity name and the raw token list. The tokens use the full
// continuation-line grammar, including overrides and "=" callsigns.
func SplitAliasLine(line string) (name, tokens string, err error) {
	line = strings.TrimSpace(line)
	i := strings.Index(line, ",")
	if i <= 0 || i == len(line)-1 {
		return "", "", fmt.Errorf("malformed alias line %q: want \"entity, alias[,alias...]\"", line)
	}
	return strings.TrimSpace(line[:i]), line[i+1:], nil
}

// ParseCustomAliases parses alias tokens against an already parsed entity.
// The returned records inherit the entity's attributes and priority exactly
// as continuation lines in the source file would.
func (p *Parser) ParseCustomAliases(entity Record, tokens string) []Record {
	entity.Kind = KindEntity
	p.current = entity
	p.haveCur = true
	return p.parseContinuation(tokens)
}
