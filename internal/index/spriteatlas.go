// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package index

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/image/draw"

	"github.com/surrealabs/sdbeditor/wdbc"
	"github.com/surrealabs/sdbeditor/wdbc/schema"
)

const (
	tileSize    = 64
	tilesPerRow = 16
)

// classMaskBit maps a ChrClasses.dbc ClassMask bit index to the
// well-known 3.3.5a class token. Bit 9 is unused (no class occupies
// it), matching Blizzard's own non-contiguous class mask.
var classMaskBit = map[int]string{
	0: "warrior", 1: "paladin", 2: "hunter", 3: "rogue",
	4: "priest", 5: "deathknight", 6: "shaman", 7: "mage",
	8: "warlock", 10: "druid",
}

// SpriteMap is sprite-map.json: per class, the pixel position of every
// icon tile within that class's atlas PNG.
type SpriteMap struct {
	Versioned
	IconSize    int                          `json:"iconSize"`
	IconsPerRow int                          `json:"iconsPerRow"`
	Classes     map[string]map[string]Point  `json:"classes"`
}

// Point is a tile's top-left pixel coordinate within its atlas.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// IconDecoder turns one icon name into the image for a sprite-atlas
// tile. blp.TileDecoder is the implementation cmd/sdbeditor wires in;
// BuildSpriteAtlases scales each image into its 64x64 slot, so a
// decoder may return any size. index depends on this as an interface
// so it never imports a BLP decoder directly.
type IconDecoder interface {
	DecodeTile(iconName string) (image.Image, error)
}

// BuildSpriteAtlases collects, per class, the set of icon base names
// reachable from that class's talent spells (via Talent -> TalentTab ->
// ClassMask, and Talent.RankID -> spell-icon index), then renders one
// 64x64-tiled PNG per class plus the shared sprite-map.json.
func BuildSpriteAtlases(talentPath, talentTabPath string, icons SpellIconIndex, decoder IconDecoder, outDir string) (SpriteMap, error) {
	talentSchema := schema.Lookup("Talent")
	tabSchema := schema.Lookup("TalentTab")

	talents, err := wdbc.Read(talentPath, talentSchema)
	if err != nil {
		return SpriteMap{}, err
	}
	tabs, err := wdbc.Read(talentTabPath, tabSchema)
	if err != nil {
		return SpriteMap{}, err
	}

	tabFields := tabSchema.Fields()
	tabIDField := fieldIndexOf(tabFields, "ID")
	classMaskField := fieldIndexOf(tabFields, "ClassMask")

	classMaskByTab := make(map[uint32]uint32, len(tabs.Rows))
	for _, row := range tabs.Rows {
		if tabIDField < 0 || classMaskField < 0 || classMaskField >= len(row) {
			continue
		}
		classMaskByTab[row[tabIDField].U32] = row[classMaskField].U32
	}

	talentFields := talentSchema.Fields()
	tabRefField := fieldIndexOf(talentFields, "TalentTab")
	rankFields := rankFieldIndices(talentFields)

	iconsByClass := make(map[string]map[string]bool)
	for _, row := range talents.Rows {
		if tabRefField < 0 || tabRefField >= len(row) {
			continue
		}
		mask := classMaskByTab[row[tabRefField].U32]
		for bitIdx := 0; bitIdx < 32; bitIdx++ {
			if mask&(1<<uint(bitIdx)) == 0 {
				continue
			}
			class, ok := classMaskBit[bitIdx]
			if !ok {
				continue
			}
			set := iconsByClass[class]
			if set == nil {
				set = make(map[string]bool)
				iconsByClass[class] = set
			}
			for _, rf := range rankFields {
				if rf >= len(row) {
					continue
				}
				spellID := row[rf].U32
				if spellID == 0 {
					continue
				}
				if iconName, ok := icons.Icons[spellID]; ok {
					set[iconName] = true
				}
			}
		}
	}

	spriteMap := SpriteMap{
		Versioned:   Versioned{Version: version},
		IconSize:    tileSize,
		IconsPerRow: tilesPerRow,
		Classes:     make(map[string]map[string]Point),
	}

	for class, set := range iconsByClass {
		names := make([]string, 0, len(set))
		for n := range set {
			names = append(names, n)
		}
		sort.Strings(names)

		atlas := image.NewRGBA(image.Rect(0, 0, tilesPerRow*tileSize, rowsFor(len(names))*tileSize))
		positions := make(map[string]Point, len(names))
		for i, name := range names {
			col, row := i%tilesPerRow, i/tilesPerRow
			pt := Point{X: col * tileSize, Y: row * tileSize}
			positions[strings.ToLower(name)] = pt

			tile, err := decoder.DecodeTile(name)
			if err != nil {
				continue
			}
			// Icons aren't guaranteed to decode at exactly tileSize
			// (some custom BLP replacements run larger), so scale
			// into the slot rather than assuming a 1:1 copy.
			dstRect := image.Rect(pt.X, pt.Y, pt.X+tileSize, pt.Y+tileSize)
			draw.CatmullRom.Scale(atlas, dstRect, tile, tile.Bounds(), draw.Over, nil)
		}
		spriteMap.Classes[class] = positions

		if err := writeAtlasPNG(filepath.Join(outDir, class+".png"), atlas); err != nil {
			return SpriteMap{}, err
		}
	}

	return spriteMap, nil
}

// ClassToken returns the well-known 3.3.5a class token for a
// ChrClasses.dbc class id (1=Warrior .. 11=Druid), using WoW's
// classMask convention bit = classID-1.
func ClassToken(classID int) (string, bool) {
	token, ok := classMaskBit[classID-1]
	return token, ok
}

func rankFieldIndices(fields []wdbc.FieldDef) []int {
	var out []int
	for i, fd := range fields {
		if strings.HasPrefix(fd.Name, "RankID_") {
			out = append(out, i)
		}
	}
	return out
}

func rowsFor(count int) int {
	if count == 0 {
		return 1
	}
	return (count + tilesPerRow - 1) / tilesPerRow
}

func writeAtlasPNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
