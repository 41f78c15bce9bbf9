package main

import (
	"encoding/xml"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/wfirexctl/internal/waveform"
	"github.com/pkg/errors"
)

// remote export XML: one <remocon> per device.
type exportFile struct {
	Remocons []remocon `xml:"remocon"`
}

type remocon struct {
	Name    string   `xml:"header>remoconname"`
	Buttons []button `xml:"signal>button"`
}

type button struct {
	Name string `xml:"buttonname"`
	Code string `xml:"code"`
}

// table accumulates devices across export files.
type table map[string]map[string]string

func (t table) addExport(r io.Reader, source string) error {
	var doc exportFile
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return errors.Wrapf(err, "parse %s", source)
	}
	for _, rc := range doc.Remocons {
		device := normalizeName(rc.Name)
		if device == "" {
			return errors.Errorf("%s: remocon without remoconname", source)
		}
		if _, ok := t[device]; ok {
			return errors.Errorf("%s: duplicate device %q", source, device)
		}
		buttons := make(map[string]string, len(rc.Buttons))
		for _, b := range rc.Buttons {
			name := normalizeName(b.Name)
			if name == "" {
				return errors.Errorf("%s: device %q has a button without buttonname", source, device)
			}
			if _, ok := buttons[name]; ok {
				return errors.Errorf("%s: device %q duplicate button %q", source, device, name)
			}
			code, err := normalizeCode(b.Code)
			if err != nil {
				return errors.Wrapf(err, "%s: device %q button %q", source, device, name)
			}
			buttons[name] = code
		}
		t[device] = buttons
	}
	return nil
}

func (t table) addFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open export")
	}
	defer f.Close()
	return t.addExport(f, path)
}

func (t table) write(w io.Writer) error {
	return errors.Wrap(toml.NewEncoder(w).Encode(waveform.File{Devices: t}), "encode waveform table")
}

// normalizeName keeps names usable as single URL path segments.
func normalizeName(raw string) string {
	return strings.ReplaceAll(strings.TrimSpace(raw), "/", "|")
}

// normalizeCode lowercases a hex code and pads an odd trailing nibble with 0.
func normalizeCode(raw string) (string, error) {
	code := strings.ToLower(strings.Join(strings.Fields(raw), ""))
	if code == "" {
		return "", errors.New("empty code")
	}
	for _, c := range code {
		if !strings.ContainsRune("0123456789abcdef", c) {
			return "", errors.Errorf("invalid hex digit %q", c)
		}
	}
	if len(code)%2 == 1 {
		code += "0"
	}
	return code, nil
}
