// Package tips holds the bundled catalog of energy-saving tips.
package tips

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Category string

const (
	CategoryCooling    Category = "cooling"
	CategoryHeating    Category = "heating"
	CategoryLighting   Category = "lighting"
	CategoryAppliances Category = "appliances"
	CategoryGeneral    Category = "general"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryCooling, CategoryHeating, CategoryLighting, CategoryAppliances, CategoryGeneral:
		return true
	}
	return false
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Lang is a catalog language.
type Lang string

const (
	English Lang = "en"
	Arabic  Lang = "ar"
)

var matcher = language.NewMatcher([]language.Tag{language.English, language.Arabic})

// ParseLanguage picks the catalog language best matching an Accept-Language
// style list such as "ar-SA,ar;q=0.9,en;q=0.5". English is the default.
func ParseLanguage(s string) Lang {
	if s == "" {
		return English
	}
	tags, _, err := language.ParseAcceptLanguage(s)
	if err != nil || len(tags) == 0 {
		return English
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No || idx != 1 {
		return English
	}
	return Arabic
}

// Text carries the same string in each catalog language.
type Text struct {
	EN string
	AR string
}

func (t Text) In(l Lang) string {
	if l == Arabic {
		return t.AR
	}
	return t.EN
}

type Tip struct {
	ID               string
	Title            Text
	Description      Text
	Category         Category
	EstimatedSavings string
	Difficulty       Difficulty
	Icon             string
}

// Catalog is an immutable list of tips.
type Catalog struct {
	tips []Tip
}

func NewCatalog(tips []Tip) *Catalog {
	return &Catalog{tips: append([]Tip(nil), tips...)}
}

// All returns every tip in catalog order.
func (c *Catalog) All() []Tip {
	return append([]Tip(nil), c.tips...)
}

// Filter returns the tips of category (all categories when empty) whose title
// or description in lang contains query, ignoring case.
func (c *Catalog) Filter(category Category, query string, lang Lang) []Tip {
	folder := cases.Fold()
	q := folder.String(strings.TrimSpace(query))

	out := []Tip{}
	for _, t := range c.tips {
		if category != "" && t.Category != category {
			continue
		}
		if q != "" &&
			!strings.Contains(folder.String(t.Title.In(lang)), q) &&
			!strings.Contains(folder.String(t.Description.In(lang)), q) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Default returns the bundled catalog.
var Default = sync.OnceValue(func() *Catalog { return NewCatalog(bundled) })

var bundled = []Tip{
	{
		ID: "ac-24c",
		Title: Text{
			EN: "Set AC to 24°C",
			AR: "اضبط المكيف على 24 درجة مئوية",
		},
		Description: Text{
			EN: "Each degree below 24°C increases electricity consumption by 6-8%. 24°C is optimal for comfort and efficiency",
			AR: "كل درجة أقل من 24 تزيد استهلاك الكهرباء بنسبة 6-8%. درجة 24 مئوية هي الدرجة المثلى للراحة والكفاءة",
		},
		Category:         CategoryCooling,
		EstimatedSavings: "15-20%",
		Difficulty:       DifficultyEasy,
		Icon:             "thermometer",
	},
	{
		ID: "fans-with-ac",
		Title: Text{
			EN: "Use fans with AC",
			AR: "استخدم المراوح مع المكيف",
		},
		Description: Text{
			EN: "Fans help distribute cool air better, allowing you to raise AC temperature by 2°C while maintaining comfort",
			AR: "المراوح تساعد على توزيع الهواء البارد بشكل أفضل، مما يسمح برفع درجة حرارة المكيف درجتين مع الحفاظ على الراحة",
		},
		Category:         CategoryCooling,
		EstimatedSavings: "10-15%",
		Difficulty:       DifficultyEasy,
		Icon:             "wind",
	},
	{
		ID: "clean-filters",
		Title: Text{
			EN: "Clean AC filters monthly",
			AR: "نظف فلاتر المكيف شهرياً",
		},
		Description: Text{
			EN: "Dirty filters make AC work harder. Monthly cleaning improves efficiency and saves energy",
			AR: "الفلاتر المتسخة تجعل المكيف يعمل بجهد أكبر. التنظيف الشهري يحسن الكفاءة ويوفر الطاقة",
		},
		Category:         CategoryCooling,
		EstimatedSavings: "5-10%",
		Difficulty:       DifficultyEasy,
		Icon:             "air.purifier",
	},
	{
		ID: "led-bulbs",
		Title: Text{
			EN: "Use LED instead of regular bulbs",
			AR: "استخدم LED بدلاً من المصابيح العادية",
		},
		Description: Text{
			EN: "LED bulbs use 80% less energy and last 25 times longer than traditional bulbs",
			AR: "مصابيح LED تستهلك طاقة أقل بنسبة 80% وتدوم أطول 25 مرة من المصابيح التقليدية",
		},
		Category:         CategoryLighting,
		EstimatedSavings: "75-80%",
		Difficulty:       DifficultyEasy,
		Icon:             "lightbulb",
	},
	{
		ID: "unplug-standby",
		Title: Text{
			EN: "Unplug devices when not in use",
			AR: "افصل الأجهزة عند عدم الاستخدام",
		},
		Description: Text{
			EN: "Devices on standby consume power. Unplugging saves 5-10% on electricity bills",
			AR: "الأجهزة في وضع الاستعداد تستهلك طاقة. فصلها كلياً يوفر 5-10% من فاتورة الكهرباء",
		},
		Category:         CategoryAppliances,
		EstimatedSavings: "5-10%",
		Difficulty:       DifficultyEasy,
		Icon:             "powerplug",
	},
	{
		ID: "insulating-curtains",
		Title: Text{
			EN: "Use insulating curtains",
			AR: "استخدم الستائر العازلة",
		},
		Description: Text{
			EN: "Insulating curtains block heat during day and keep home cool, reducing AC needs",
			AR: "الستائر العازلة تمنع دخول الحرارة نهاراً وتحافظ على برودة المنزل، مما يقلل الحاجة للمكيف",
		},
		Category:         CategoryCooling,
		EstimatedSavings: "10-15%",
		Difficulty:       DifficultyMedium,
		Icon:             "curtains.closed",
	},
}
