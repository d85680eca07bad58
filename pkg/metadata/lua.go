package metadata

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/matzehuels/spritter/pkg/buildinfo"
)

var luaEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`)

// WriteLua writes t as a Lua chunk:
//
//	-- Generated by spritter v1.2.0 - https://github.com/matzehuels/spritter
//	return {
//	  ["spritter"] = { 1, 2, 0 },
//	  ["height"] = 128,
//	  ["shift"] = {0.5 / 64, -3 / 64},
//	}
func WriteLua(w io.Writer, t Table) error {
	bw := bufio.NewWriter(w)
	v := version()

	fmt.Fprintf(bw, "-- Generated by spritter %s - %s\n", buildinfo.Version, Repository)
	fmt.Fprintln(bw, "return {")
	fmt.Fprintf(bw, "  [\"%s\"] = { %d, %d, %d },\n", VersionKey, v[0], v[1], v[2])
	for _, k := range sortedKeys(t) {
		fmt.Fprintf(bw, "  [\"%s\"] = ", luaEscaper.Replace(k))
		if err := luaValue(bw, t[k]); err != nil {
			return err
		}
		fmt.Fprintln(bw, ",")
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

func luaValue(w *bufio.Writer, v any) error {
	switch v := v.(type) {
	case string:
		fmt.Fprintf(w, "\"%s\"", luaEscaper.Replace(v))
	case bool:
		w.WriteString(strconv.FormatBool(v))
	case int:
		w.WriteString(strconv.Itoa(v))
	case int64:
		w.WriteString(strconv.FormatInt(v, 10))
	case float64:
		w.WriteString(formatFloat(v))
	case Shift:
		fmt.Fprintf(w, "{%s / %d, %s / %d}", formatFloat(v.X), v.Res, formatFloat(v.Y), v.Res)
	case []int:
		w.WriteByte('{')
		for _, n := range v {
			w.WriteString(strconv.Itoa(n))
			w.WriteByte(',')
		}
		w.WriteByte('}')
	case Table:
		w.WriteByte('{')
		for _, k := range sortedKeys(v) {
			fmt.Fprintf(w, "[\"%s\"] = ", luaEscaper.Replace(k))
			if err := luaValue(w, v[k]); err != nil {
				return err
			}
			w.WriteByte(',')
		}
		w.WriteByte('}')
	case []Table:
		w.WriteByte('{')
		for _, t := range v {
			if err := luaValue(w, t); err != nil {
				return err
			}
			w.WriteByte(',')
		}
		w.WriteByte('}')
	default:
		return fmt.Errorf("unsupported metadata value %T", v)
	}
	return nil
}

func sortedKeys(t Table) []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
