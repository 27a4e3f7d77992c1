package question

const (
	eraModern       = "modern"
	eraContemporary = "contemporary"
	eraPostwar      = "postwar"
)

const bgBase = "https://images.unsplash.com/"
const bgParams = "?auto=format&fit=crop&q=80&w=1600"

func bg(photo string) string {
	return bgBase + photo + bgParams
}

var catalog = []Question{
	{ID: "w1", Event: "The Glorious Revolution in England", Year: 1688, Difficulty: DifficultyMedium, Era: eraModern, Theme: ThemeRevolution, Background: bg("photo-1547983331-f24224f6f415")},
	{ID: "w2", Event: "The American Declaration of Independence is issued", Year: 1776, Difficulty: DifficultyEasy, Era: eraModern, Theme: ThemeRevolution, Background: bg("photo-1550985543-4982f671932f")},
	{ID: "w3", Event: "The French Revolution breaks out", Year: 1789, Difficulty: DifficultyEasy, Era: eraModern, Theme: ThemeRevolution, Background: bg("photo-1499856871958-5b9627545d1a")},
	{ID: "w4", Event: "Watt's improved steam engine", Year: 1785, Difficulty: DifficultyMedium, Era: eraModern, Theme: ThemeSteam, Background: bg("photo-1581094794329-c8112a89af12")},
	{ID: "w5", Event: "The Communist Manifesto is published", Year: 1848, Difficulty: DifficultyEasy, Era: eraModern, Theme: ThemeSteam, Background: bg("photo-1534438327276-14e5300c3a48")},
	{ID: "w6", Event: "Emancipation reform of Russian serfdom", Year: 1861, Difficulty: DifficultyMedium, Era: eraModern, Theme: ThemeSteam, Background: bg("photo-1599727488219-da7bd1729007")},
	{ID: "w7", Event: "The American Civil War ends", Year: 1865, Difficulty: DifficultyMedium, Era: eraModern, Theme: ThemeSteam, Background: bg("photo-1501446529957-6226bd447c46")},
	{ID: "w8", Event: "Unification of the German Empire", Year: 1871, Difficulty: DifficultyHard, Era: eraModern, Theme: ThemeSteam, Background: bg("photo-1508804185872-d7badad00f7d")},
	{ID: "w9", Event: "The Paris Commune is established", Year: 1871, Difficulty: DifficultyMedium, Era: eraModern, Theme: ThemeSteam, Background: bg("photo-1506973035872-a4ec16b8e8d9")},
	{ID: "w10", Event: "The Second Industrial Revolution reaches its peak", Year: 1870, Difficulty: DifficultyHard, Era: eraModern, Theme: ThemeSteam, Background: bg("photo-1451187580459-43490279c0fa")},
	{ID: "w11", Event: "The First World War breaks out", Year: 1914, Difficulty: DifficultyEasy, Era: eraContemporary, Theme: ThemeWar, Background: bg("photo-1440404653325-ab127d49abc1")},
	{ID: "w12", Event: "The Russian October Revolution", Year: 1917, Difficulty: DifficultyEasy, Era: eraContemporary, Theme: ThemeWar, Background: bg("photo-1520038410233-7141f77e47aa")},
	{ID: "w13", Event: "The Versailles system takes shape", Year: 1919, Difficulty: DifficultyMedium, Era: eraContemporary, Theme: ThemeWar, Background: bg("photo-1503917988258-f19178c1f307")},
	{ID: "w14", Event: "Soviet Russia begins the New Economic Policy", Year: 1921, Difficulty: DifficultyMedium, Era: eraContemporary, Theme: ThemeWar, Background: bg("photo-1469334031218-e382a71b716b")},
	{ID: "w15", Event: "The world economic crisis of 1929 erupts", Year: 1929, Difficulty: DifficultyEasy, Era: eraContemporary, Theme: ThemeWar, Background: bg("photo-1451187580459-43490279c0fa")},
	{ID: "w16", Event: "Roosevelt's New Deal begins", Year: 1933, Difficulty: DifficultyMedium, Era: eraContemporary, Theme: ThemeWar, Background: bg("photo-1541339905195-06b297229567")},
	{ID: "w17", Event: "The Second World War breaks out in full", Year: 1939, Difficulty: DifficultyEasy, Era: eraContemporary, Theme: ThemeWar, Background: bg("photo-1442115653181-110291703a10")},
	{ID: "w18", Event: "The Bretton Woods system is established", Year: 1944, Difficulty: DifficultyHard, Era: eraContemporary, Theme: ThemeWar, Background: bg("photo-1512428559087-560fa5ceab42")},
	{ID: "w19", Event: "The United Nations is formally founded", Year: 1945, Difficulty: DifficultyEasy, Era: eraContemporary, Theme: ThemeWar, Background: bg("photo-1505664194779-8beaceb93744")},
	{ID: "w20", Event: "The Truman Doctrine opens the Cold War", Year: 1947, Difficulty: DifficultyMedium, Era: eraPostwar, Theme: ThemeColdWar, Background: bg("photo-1451187580459-43490279c0fa")},
	{ID: "w21", Event: "NATO is founded", Year: 1949, Difficulty: DifficultyMedium, Era: eraPostwar, Theme: ThemeColdWar, Background: bg("photo-1506905925346-21bda4d32df4")},
	{ID: "w22", Event: "The Warsaw Pact is established", Year: 1955, Difficulty: DifficultyMedium, Era: eraPostwar, Theme: ThemeColdWar, Background: bg("photo-1531297484001-80022131f5a1")},
	{ID: "w23", Event: "The Non-Aligned Movement is formally formed", Year: 1961, Difficulty: DifficultyHard, Era: eraPostwar, Theme: ThemeColdWar, Background: bg("photo-1526772662000-3f88f10405ff")},
	{ID: "w24", Event: "The Cuban Missile Crisis", Year: 1962, Difficulty: DifficultyHard, Era: eraPostwar, Theme: ThemeColdWar, Background: bg("photo-1493106819501-66d381c466f1")},
	{ID: "w25", Event: "The European Communities are formed", Year: 1967, Difficulty: DifficultyHard, Era: eraPostwar, Theme: ThemeColdWar, Background: bg("photo-1518709268805-4e9042af9f23")},
	{ID: "w26", Event: "The dissolution of the Soviet Union", Year: 1991, Difficulty: DifficultyEasy, Era: eraPostwar, Theme: ThemeGlobal, Background: bg("photo-1521747116042-5a810fda9664")},
	{ID: "w27", Event: "The European Union is founded", Year: 1993, Difficulty: DifficultyMedium, Era: eraPostwar, Theme: ThemeGlobal, Background: bg("photo-1451187580459-43490279c0fa")},
	{ID: "w28", Event: "The World Trade Organization begins operating", Year: 1995, Difficulty: DifficultyEasy, Era: eraPostwar, Theme: ThemeGlobal, Background: bg("photo-1494412651409-8963ce7935a7")},
	{ID: "w29", Event: "Euro banknotes and coins enter circulation", Year: 2002, Difficulty: DifficultyHard, Era: eraPostwar, Theme: ThemeGlobal, Background: bg("photo-1526304640581-d334cdbbf45e")},
}

// Catalog returns the built-in question set. Callers get their own copy.
func Catalog() []Question {
	out := make([]Question, len(catalog))
	copy(out, catalog)
	return out
}
