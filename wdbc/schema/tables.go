// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package schema

import "github.com/surrealabs/sdbeditor/wdbc"

// registerCore populates the registry with the ~25+ bundled 3.3.5a
// schemas the toolchain operates on. Field layouts follow the public
// 3.3.5a DBC documentation community tooling converged on; trailing
// unidentified columns are named Reserved_N rather than guessed at,
// mirroring the codec's own Field_N fallback for unregistered tables.
func registerCore() {
	registerSpell()
	registerSpellIcon()
	registerTalent()
	registerTalentTab()
	registerChrClasses()
	registerChrRaces()
	registerFaction()
	registerFactionGroup()
	registerMap()
	registerAchievement()
	registerAchievementCategory()
	registerSkillLine()
	registerSkillLineAbility()
	registerSkillRaceClassInfo()
	registerSpellVisual()
	registerSpellCategory()
	registerSpellDuration()
	registerSpellRange()
	registerSpellRadius()
	registerSpellCastTimes()
	registerSpellFocusObject()
	registerSpellItemEnchantment()
	registerSpellRuneCost()
	registerItem()
	registerItemDisplayInfo()
	registerAreaTable()
	registerCreatureDisplayInfo()
	registerCharTitles()
	registerEmotes()
	registerSoundEntries()
	registerGameObjectDisplayInfo()
}

func u(name string) wdbc.FieldDef    { return wdbc.FieldDef{Name: name, Type: wdbc.FieldUint32} }
func i(name string) wdbc.FieldDef    { return wdbc.FieldDef{Name: name, Type: wdbc.FieldInt32} }
func f(name string) wdbc.FieldDef    { return wdbc.FieldDef{Name: name, Type: wdbc.FieldFloat} }
func s(name string) wdbc.FieldDef    { return wdbc.FieldDef{Name: name, Type: wdbc.FieldString} }
func fl(name string) wdbc.FieldDef   { return wdbc.FieldDef{Name: name, Type: wdbc.FieldFlags} }
func ref(fd wdbc.FieldDef, table string) wdbc.FieldDef {
	fd.Ref = table
	return fd
}

// registerSpell builds Spell.dbc's layout so that SpellIconID lands
// exactly at field index 133 / byte offset 532, which the spell-icon
// join depends on.
func registerSpell() {
	var fields []wdbc.FieldDef
	fields = append(fields, u("ID"))
	fields = append(fields, LocString("SpellName")...)          // 17
	fields = append(fields, LocString("SpellNameSubtext")...)   // 17
	fields = append(fields, LocString("SpellDescription")...)   // 17
	fields = append(fields, LocString("SpellAuraDescription")...) // 17
	// 1 + 17*4 = 69 fields so far (indices 0..68).

	fields = append(fields, ArrayField("Attributes", wdbc.FieldFlags, 8)...) // 69..76
	fields = append(fields, i("CastingTimeIndex"))                          // 77
	fields = append(fields, i("DurationIndex"))                             // 78
	fields = append(fields, i("RangeIndex"))                                // 79
	fields = append(fields, f("Speed"))                                     // 80
	fields = append(fields, u("StackAmount"))                               // 81
	fields = append(fields, ArrayField("Totem", wdbc.FieldUint32, 2)...)    // 82..83
	fields = append(fields, ArrayField("Reagent", wdbc.FieldInt32, 8)...)   // 84..91
	fields = append(fields, ArrayField("ReagentCount", wdbc.FieldUint32, 8)...) // 92..99
	fields = append(fields, i("EquippedItemClass"))                        // 100
	fields = append(fields, i("EquippedItemSubClassMask"))                 // 101
	fields = append(fields, i("EquippedItemInventoryTypeMask"))            // 102
	fields = append(fields, ArrayField("Effect", wdbc.FieldUint32, 3)...)         // 103..105
	fields = append(fields, ArrayField("EffectDieSides", wdbc.FieldInt32, 3)...)  // 106..108
	fields = append(fields, ArrayField("EffectRealPointsPerLevel", wdbc.FieldFloat, 3)...) // 109..111
	fields = append(fields, ArrayField("EffectBasePoints", wdbc.FieldInt32, 3)...)         // 112..114
	fields = append(fields, ArrayField("EffectMechanic", wdbc.FieldUint32, 3)...)          // 115..117
	fields = append(fields, ArrayField("EffectImplicitTargetA", wdbc.FieldUint32, 3)...)   // 118..120
	fields = append(fields, ArrayField("EffectImplicitTargetB", wdbc.FieldUint32, 3)...)   // 121..123
	fields = append(fields, ArrayField("EffectRadiusIndex", wdbc.FieldUint32, 3)...)       // 124..126
	fields = append(fields, ArrayField("EffectApplyAuraName", wdbc.FieldUint32, 3)...)     // 127..129
	fields = append(fields, ArrayField("EffectAmplitude", wdbc.FieldFloat, 3)...)          // 130..132
	// len(fields) == 133 here: the next append lands at index 133.
	fields = append(fields, ref(u("SpellIconID"), "SpellIcon")) // 133 <- field 133, byte offset 532

	fields = append(fields, ref(u("ActiveIconID"), "SpellIcon"))
	fields = append(fields, u("SpellPriority"))
	fields = append(fields, ref(u("SpellVisual1"), "SpellVisual"))
	fields = append(fields, ref(u("SpellVisual2"), "SpellVisual"))
	fields = append(fields, fl("SpellSchoolMask"))
	fields = append(fields, u("RuneCostID"))
	fields = append(fields, u("SpellMissileID"))
	fields = append(fields, u("MaxTargetLevel"))
	fields = append(fields, u("SpellFamilyName"))
	fields = append(fields, ArrayField("SpellFamilyFlags", wdbc.FieldFlags, 2)...)
	fields = append(fields, u("MaxAffectedTargets"))
	fields = append(fields, u("DmgClass"))
	fields = append(fields, u("PreventionType"))
	fields = append(fields, i("StanceBarOrder"))
	fields = append(fields, u("MinFactionID"))
	fields = append(fields, u("MinReputation"))
	fields = append(fields, u("RequiredAuraVicinity"))
	fields = append(fields, ArrayField("RequiredTotemCategoryID", wdbc.FieldUint32, 2)...)
	fields = append(fields, ref(u("RequiredAreasID"), "AreaTable"))
	fields = append(fields, u("SchoolLock"))

	// Pad to the community-documented 234-field count with trailing
	// reserved columns, matching the codec's own uint32 fallback for
	// fields a schema doesn't cover.
	if remaining := 234 - len(fields); remaining > 0 {
		fields = append(fields, ArrayField("Reserved", wdbc.FieldUint32, remaining)...)
	}

	register("Spell", fields)
}

func registerSpellIcon() {
	register("SpellIcon", []wdbc.FieldDef{
		u("ID"),
		s("IconPath"),
	})
}

func registerTalent() {
	fields := []wdbc.FieldDef{
		u("ID"),
		ref(u("TalentTab"), "TalentTab"),
		u("Row"),
		u("Col"),
	}
	fields = append(fields, ArrayField("RankID", wdbc.FieldUint32, 5)...)
	fields = append(fields, ArrayField("PrereqTalent", wdbc.FieldUint32, 3)...)
	fields = append(fields, ArrayField("PrereqRank", wdbc.FieldUint32, 3)...)
	fields = append(fields, fl("Flags"))
	fields = append(fields, u("RequiredSpellID"))
	fields = append(fields, ArrayField("CategoryMask", wdbc.FieldUint32, 2)...)
	register("Talent", fields)
}

func registerTalentTab() {
	fields := []wdbc.FieldDef{u("ID")}
	fields = append(fields, LocString("Name")...)
	fields = append(fields, ref(u("SpellIconID"), "SpellIcon"))
	fields = append(fields, fl("RaceMask"))
	fields = append(fields, fl("ClassMask"))
	fields = append(fields, fl("PetTalentMask"))
	fields = append(fields, u("OrderIndex"))
	fields = append(fields, s("BackgroundFile"))
	register("TalentTab", fields)
}

func registerChrClasses() {
	fields := []wdbc.FieldDef{
		u("ID"),
		u("DamageBonusStat"),
		u("PowerType"),
		s("PetNameToken"),
	}
	fields = append(fields, LocString("Name")...) // Name starts at index 4, matching LookupSources.
	fields = append(fields, s("Filename"))
	fields = append(fields, u("SpellClassSet"))
	fields = append(fields, fl("Flags"))
	register("ChrClasses", fields)
}

func registerChrRaces() {
	fields := []wdbc.FieldDef{
		u("ID"),
		fl("Flags"),
		ref(u("FactionID"), "Faction"),
		u("ExplorationSoundID"),
		u("MaleDisplayId"),
		u("FemaleDisplayId"),
		u("MaleDisplayId2"),
		u("FemaleDisplayId2"),
		s("ClientPrefix"),
		u("BaseLanguage"),
		u("CreatureType"),
		u("ResSicknessSpellID"),
		u("SplashSoundID"),
		s("ClientFileString"),
		u("CinematicSequenceID"),
	}
	fields = append(fields, LocString("Name")...) // Name starts at index 15, matching LookupSources.
	register("ChrRaces", fields)
}

func registerFaction() {
	fields := []wdbc.FieldDef{u("ID"), u("ReputationIndex")}
	fields = append(fields, ArrayField("ReputationRaceMask", wdbc.FieldFlags, 4)...)
	fields = append(fields, ArrayField("ReputationClassMask", wdbc.FieldFlags, 4)...)
	fields = append(fields, ArrayField("ReputationFlags", wdbc.FieldFlags, 4)...)
	fields = append(fields, ArrayField("ReputationBase", wdbc.FieldInt32, 4)...)
	fields = append(fields, u("ParentFactionID"))
	fields = append(fields, ArrayField("Reserved", wdbc.FieldUint32, 4)...)
	// len(fields) == 23 here: Name starts at index 23, matching LookupSources.
	fields = append(fields, LocString("Name")...)
	fields = append(fields, s("Description"))
	register("Faction", fields)
}

func registerFactionGroup() {
	register("FactionGroup", []wdbc.FieldDef{u("ID"), fl("MaskID"), s("InternalName")})
}

func registerMap() {
	fields := []wdbc.FieldDef{
		u("ID"),
		s("Directory"),
		u("InstanceType"),
		fl("Flags"),
		u("PVP"),
	}
	fields = append(fields, LocString("MapName")...) // Name starts at index 5, matching LookupSources.
	register("Map", fields)
}

func registerAchievement() {
	fields := []wdbc.FieldDef{
		u("ID"),
		i("Faction"),
		ref(u("MapID"), "Map"),
		u("Supercedes"),
	}
	fields = append(fields, s("InstanceFlags"))
	fields = append(fields, ArrayField("Reserved", wdbc.FieldUint32, 4)...)
	// len(fields) == 9 here: Title starts at index 9, matching LookupSources.
	fields = append(fields, LocString("Title")...)
	register("Achievement", fields)
}

func registerAchievementCategory() {
	fields := []wdbc.FieldDef{u("ID"), i("ParentCategory")}
	fields = append(fields, LocString("Name")...)
	fields = append(fields, u("SortOrder"))
	register("AchievementCategory", fields)
}

func registerSkillLine() {
	fields := []wdbc.FieldDef{
		u("ID"),
		u("CategoryID"),
		u("SkillCostsID"),
	}
	// len(fields) == 3 here: DisplayName starts at index 3, matching LookupSources.
	fields = append(fields, LocString("DisplayName")...)
	register("SkillLine", fields)
}

func registerSkillLineAbility() {
	register("SkillLineAbility", []wdbc.FieldDef{
		u("ID"),
		ref(u("SkillLine"), "SkillLine"),
		ref(u("Spell"), "Spell"),
		fl("RaceMask"),
		fl("ClassMask"),
		u("MinSkillLineRank"),
		u("SupercedesSpell"),
		u("AcquireMethod"),
		u("TrivialSkillLineRankHigh"),
		u("TrivialSkillLineRankLow"),
	})
}

func registerSkillRaceClassInfo() {
	register("SkillRaceClassInfo", []wdbc.FieldDef{
		u("ID"),
		ref(u("SkillID"), "SkillLine"),
		fl("RaceMask"),
		fl("ClassMask"),
		fl("Flags"),
		u("MinLevel"),
		u("SkillTierID"),
		u("SkillCostID"),
	})
}

func registerSpellVisual() {
	register("SpellVisual", []wdbc.FieldDef{
		u("ID"),
		u("PrecastKit"),
		u("CastKit"),
		u("ImpactKit"),
		u("StateKit"),
		u("StateDoneKit"),
		u("ChannelKit"),
	})
}

func registerSpellCategory() {
	register("SpellCategory", []wdbc.FieldDef{u("ID"), u("Flags")})
}

func registerSpellDuration() {
	register("SpellDuration", []wdbc.FieldDef{u("ID"), i("Duration"), i("DurationPerLevel"), i("MaxDuration")})
}

func registerSpellRange() {
	fields := []wdbc.FieldDef{u("ID"), f("MinRangeHostile"), f("MinRangeFriend"), f("MaxRangeHostile"), f("MaxRangeFriend"), fl("Flags")}
	fields = append(fields, LocString("DisplayName")...)
	fields = append(fields, LocString("DisplayNameShort")...)
	register("SpellRange", fields)
}

func registerSpellRadius() {
	register("SpellRadius", []wdbc.FieldDef{u("ID"), f("Radius"), f("RadiusPerLevel"), f("RadiusMax")})
}

func registerSpellCastTimes() {
	register("SpellCastTimes", []wdbc.FieldDef{u("ID"), i("Base"), i("PerLevel"), i("Minimum")})
}

func registerSpellFocusObject() {
	fields := []wdbc.FieldDef{u("ID")}
	fields = append(fields, LocString("Name")...)
	register("SpellFocusObject", fields)
}

func registerSpellItemEnchantment() {
	fields := []wdbc.FieldDef{u("ID")}
	fields = append(fields, ArrayField("Effect", wdbc.FieldUint32, 3)...)
	fields = append(fields, ArrayField("EffectPointsMin", wdbc.FieldUint32, 3)...)
	fields = append(fields, ArrayField("EffectPointsMax", wdbc.FieldUint32, 3)...)
	fields = append(fields, ArrayField("EffectArg", wdbc.FieldUint32, 3)...)
	fields = append(fields, LocString("Name")...)
	fields = append(fields, u("ItemVisual"))
	fields = append(fields, fl("Flags"))
	register("SpellItemEnchantment", fields)
}

func registerSpellRuneCost() {
	register("SpellRuneCost", []wdbc.FieldDef{u("ID"), u("Blood"), u("Unholy"), u("Frost"), u("RunicPower")})
}

func registerItem() {
	register("Item", []wdbc.FieldDef{
		u("ID"),
		u("ClassID"),
		u("SubclassID"),
		i("SoundOverrideSubclass"),
		ref(u("DisplayInfoID"), "ItemDisplayInfo"),
		u("InventoryType"),
		u("SheatheType"),
	})
}

func registerItemDisplayInfo() {
	register("ItemDisplayInfo", []wdbc.FieldDef{
		u("ID"),
		s("ModelName_1"),
		s("ModelName_2"),
		s("ModelTexture_1"),
		s("ModelTexture_2"),
		s("InventoryIcon_1"),
		s("InventoryIcon_2"),
	})
}

func registerAreaTable() {
	fields := []wdbc.FieldDef{
		u("ID"),
		ref(u("MapID"), "Map"),
		u("ParentAreaID"),
		u("AreaBit"),
		fl("Flags"),
	}
	fields = append(fields, LocString("AreaName")...)
	register("AreaTable", fields)
}

func registerCreatureDisplayInfo() {
	register("CreatureDisplayInfo", []wdbc.FieldDef{
		u("ID"),
		u("ModelID"),
		u("SoundID"),
		i("ExtendedDisplayInfoID"),
		f("CreatureModelScale"),
		i("CreatureModelAlpha"),
		s("TextureVariation_1"),
		s("TextureVariation_2"),
		s("TextureVariation_3"),
		s("PortraitTextureName"),
	})
}

func registerCharTitles() {
	fields := []wdbc.FieldDef{u("ID"), u("Condition_ID")}
	fields = append(fields, LocString("Name")...)
	fields = append(fields, LocString("Name1")...)
	fields = append(fields, u("MaskID"))
	register("CharTitles", fields)
}

func registerEmotes() {
	register("Emotes", []wdbc.FieldDef{
		u("ID"),
		s("EmoteSlashCommand"),
		u("AnimID"),
		fl("EmoteFlags"),
		u("EmoteSpecProc"),
		u("EmoteSpecProcParam"),
		u("EventSoundID"),
	})
}

func registerSoundEntries() {
	register("SoundEntries", []wdbc.FieldDef{
		u("ID"),
		u("SoundType"),
		s("Name"),
		s("File_1"),
		u("Freq_1"),
		s("DirectoryBase"),
		f("Volume"),
		f("MinDistance"),
		f("DistanceCutoff"),
		u("SoundEntriesAdvancedID"),
	})
}

func registerGameObjectDisplayInfo() {
	register("GameObjectDisplayInfo", []wdbc.FieldDef{
		u("ID"),
		s("ModelName"),
		u("Sound_1"),
	})
}
