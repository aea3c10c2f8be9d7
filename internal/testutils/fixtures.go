package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// AncientRedDragonText is a trimmed stat block that exercises every monster
// section, a lair XP value and a legendary action usage clause
const AncientRedDragonText = `Ancient Red Dragon Gargantuan Dragon (Chromatic), Chaotic Evil
AC 22 HP 507 (26d20+234) Initiative +14 (24)
Speed 40 ft., Climb 40 ft., Fly 80 ft.
Str 30 +10 +10 Dex 10 +0 +7 Con 29 +9 +9
Int 18 +4 +4 WIS 15 +2 +9 Cha 27 +8 +8
Skills Perception +16, Stealth +7
Immunities Fire
Senses Blindsight 60 ft., Darkvision 120 ft.; Passive Perception 26
Languages Common, Draconic
CR 24 (XP 62,000, or 75,000 in lair; PB +7)
Traits
Legendary Resistance (4/Day, or 5/Day in Lair). If the dragon fails a saving throw, it can choose to succeed instead.
Actions
Multiattack. The dragon makes three Rend attacks.
Rend. Melee Attack Roll: +17, reach 15 ft. Hit: 19 (2d8 + 10) Slashing damage plus 10 (3d6) Fire damage.
Fire Breath (Recharge 5–6). Dexterity Saving Throw: DC 24, each creature in a 90-foot Cone. Failure: 91 (26d6) Fire damage. Success: Half damage.
Legendary Actions
Legendary Action Uses: 3 (4 in Lair). Immediately after another creature's turn, the dragon can expend a use to take one of the following actions.
Commanding Presence. The dragon uses Spellcasting to cast Command (level 2 version).
Fiery Rays. Dexterity Saving Throw: DC 21, one creature the dragon can see within 60 feet. Failure: 14 (4d6) Fire damage.`

// WriteTempFile writes content under t.TempDir and returns the path
func WriteTempFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600), "failed to write fixture")

	return path
}
