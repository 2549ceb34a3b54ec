// Package education holds the static reference material shown in the
// learn view and the daily tips. It has no dependency on stored data.
package education

import (
	"fmt"
	"strings"

	"github.com/idilsaglam/crms/internal/model"
)

// Topic is one entry of the education hub.
type Topic struct {
	ID          string
	Title       string
	Description string
	Overview    string
	Sections    []Section
}

// Section is a titled list inside a topic.
type Section struct {
	Title string
	Items []string
}

// Markdown renders the topic body.
func (t Topic) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n_%s_\n\n%s\n", t.Title, t.Description, t.Overview)
	for _, s := range t.Sections {
		fmt.Fprintf(&b, "\n## %s\n\n", s.Title)
		for _, it := range s.Items {
			fmt.Fprintf(&b, "- %s\n", it)
		}
	}
	return b.String()
}

var topics = []Topic{
	{
		ID:          "basics",
		Title:       "CrMS Basics",
		Description: "Understanding the fundamentals of the Creighton Model",
		Overview: "The Creighton Model FertilityCare System (CrMS) is a standardized modification of the " +
			"Billings Ovulation Method. It helps women understand their natural fertility cycles through " +
			"careful observation of biological markers.",
		Sections: []Section{
			{Title: "Key Points", Items: []string{
				"Based on standardized observation of cervical mucus",
				"Can be used to achieve or avoid pregnancy",
				"Provides insights into reproductive health",
				"Requires no artificial hormones or devices",
				"Effectiveness rates of 96.8-99.5% for avoiding pregnancy",
			}},
			{Title: "Tips for Success", Items: []string{
				"Make observations during routine bathroom use",
				"Record observations immediately",
				"Be consistent with timing of observations",
				"Don't rely on internal examinations",
			}},
		},
	},
	{
		ID:          "observations",
		Title:       "Making Observations",
		Description: "How to accurately observe and record fertility signs",
		Overview: "Accurate observation is the foundation of the Creighton Model. Learning to identify " +
			"different types of cervical mucus and other fertility signs is essential for effective use of the system.",
		Sections: []Section{
			{Title: "Key Points", Items: []string{
				"Observe mucus at the vulva during bathroom use",
				"Note color, consistency, and stretchability",
				"Record the most fertile observation of the day",
				"Distinguish between mucus and other discharge",
				"Track bleeding patterns accurately",
			}},
			{Title: "Mucus Types", Items: []string{
				"**Dry**: no mucus discharge observed. Infertile (when in post-Peak phase)",
				"**Sticky**: thick, tacky, or pasty mucus. Beginning fertility",
				"**Creamy**: smooth, lotion-like consistency. Developing fertility",
				"**Clear/Stretchy**: clear, stretchy, or lubricative. Peak fertility",
			}},
		},
	},
	{
		ID:          "peak-day",
		Title:       "Understanding Peak Day",
		Description: "Identifying and understanding the significance of Peak Day",
		Overview: "Peak Day is the last day of clear, stretchy, or lubricative mucus discharge. It correlates " +
			"closely with ovulation and is crucial for understanding your fertility pattern.",
		Sections: []Section{
			{Title: "Key Points", Items: []string{
				"Peak Day is identified retrospectively",
				"Usually occurs within 24-48 hours of ovulation",
				"Marks the transition from fertile to infertile phase",
				"Post-Peak phase is typically 12-16 days",
				"Essential for timing intercourse for pregnancy achievement",
			}},
			{Title: "Identifying Peak Day", Items: []string{
				"Look for the last day of the most fertile mucus",
				"Clear, stretchy mucus that may resemble raw egg white",
				"Lubricative sensation",
				"Can only be confirmed after mucus changes or disappears",
			}},
		},
	},
	{
		ID:          "health",
		Title:       "Health Monitoring",
		Description: "Using CrMS for reproductive health awareness",
		Overview: "The Creighton Model provides insights into reproductive health beyond fertility awareness. " +
			"Abnormal patterns can indicate underlying health issues.",
		Sections: []Section{
			{Title: "Key Points", Items: []string{
				"Irregular bleeding patterns may indicate hormonal issues",
				"Absence of fertile mucus could suggest ovulation problems",
				"Continuous mucus discharge may need evaluation",
				"Short post-Peak phases might indicate luteal phase defects",
				"CrMS data helps healthcare providers with diagnosis",
			}},
			{Title: "Health Signs", Items: []string{
				"**Irregular Cycles**: may indicate hormonal imbalances or PCOS",
				"**No Peak Day**: possible anovulation or hormonal issues",
				"**Short Post-Peak Phase**: potential luteal phase deficiency",
				"**Continuous Bleeding**: may require medical evaluation",
			}},
		},
	},
	{
		ID:          "effectiveness",
		Title:       "Effectiveness & Success",
		Description: "Understanding the effectiveness of the Creighton Model",
		Overview: "When used correctly, the Creighton Model is highly effective for both achieving and avoiding " +
			"pregnancy. Success depends on proper instruction, accurate observations, and consistent application.",
		Sections: []Section{
			{Title: "Effectiveness Rates", Items: []string{
				"**Avoiding Pregnancy**: 96.8-99.5%, with proper instruction and consistent use",
				"**Achieving Pregnancy**: up to 98%, in couples with normal fertility",
				"**With NaProTECHNOLOGY**: up to 80%, for couples with infertility issues",
			}},
			{Title: "Success Factors", Items: []string{
				"Proper instruction from certified FertilityCare Practitioner",
				"Consistent daily observations",
				"Accurate charting and record-keeping",
				"Following system guidelines precisely",
				"Mutual cooperation between partners",
			}},
		},
	},
	{
		ID:          "lifestyle",
		Title:       "Lifestyle & Relationships",
		Description: "How CrMS impacts relationships and daily life",
		Overview: "The Creighton Model is more than a fertility awareness method. It promotes communication, " +
			"mutual respect, and shared responsibility in relationships.",
		Sections: []Section{
			{Title: "Benefits", Items: []string{
				"Increased communication between partners",
				"Shared responsibility for family planning",
				"Greater appreciation for natural fertility",
				"No side effects from artificial hormones",
				"Cost-effective compared to contraceptives",
			}},
			{Title: "Daily Life", Items: []string{
				"Daily observation becomes routine",
				"Partners learn to communicate about fertility",
				"Respect for natural body processes",
				"Planning intimate moments around fertility goals",
				"Building trust and cooperation",
			}},
		},
	},
}

var tips = []string{
	"The Creighton Model helps you understand your body's natural fertility signs through careful observation of cervical mucus.",
	"Peak Day is the last day of clear, stretchy, or lubricative mucus - it correlates closely with ovulation.",
	"Dry days indicate infertility when no mucus discharge is observed.",
	"The post-Peak phase (after ovulation) is typically consistent in length, around 12-16 days.",
	"Sticky or cloudy mucus often appears as fertility begins to develop.",
	"The CrMS is 96.8-99.5% effective for avoiding pregnancy when used correctly.",
	"Recording observations daily helps identify your unique fertility pattern.",
	"The Base Infertile Pattern (BIP) helps women with continuous mucus identify fertile changes.",
}

var observationInfo = map[model.ObservationType]string{
	model.Dry:          "Dry days indicate infertility. No mucus discharge is observed during routine bathroom use.",
	model.Sticky:       "Sticky mucus often appears as fertility begins. It may be thick, tacky, or pasty in consistency.",
	model.Creamy:       "Creamy mucus indicates developing fertility. It has a smooth, lotion-like consistency.",
	model.Clear:        "Clear, stretchy, or lubricative mucus indicates peak fertility. This is the most fertile type of mucus.",
	model.Menstruation: "Menstrual bleeding marks the beginning of a new cycle.",
	model.Spotting:     "Light bleeding or brown discharge that is not full menstrual flow.",
}

// Topics returns the hub topics in display order.
func Topics() []Topic {
	out := make([]Topic, len(topics))
	copy(out, topics)
	return out
}

func FindTopic(id string) (Topic, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, t := range topics {
		if t.ID == id {
			return t, true
		}
	}
	return Topic{}, false
}

func Tips() []string { return append([]string(nil), tips...) }

// TipFor picks the tip of the day from the day of the month.
func TipFor(d model.Date) string { return tips[d.Day()%len(tips)] }

// ObservationInfo is the "about this observation" text for a type.
func ObservationInfo(t model.ObservationType) string { return observationInfo[t] }

func Welcome() string {
	return "The Creighton Model FertilityCare System helps you understand your body's natural fertility signs. " +
		"Explore the topics below to deepen your knowledge of the method."
}

// QuickReference is the glossary shown under the entry form.
func QuickReference() []Section {
	return []Section{{Title: "Quick Reference", Items: []string{
		"**Peak Day**: the last day of clear, stretchy, or lubricative mucus",
		"**Fertile Window**: days with any mucus discharge",
		"**Infertile Days**: dry days and post-Peak phase",
		"**Observation Time**: best observed during routine bathroom use",
	}}}
}

func Resources() []Section {
	return []Section{{Title: "Quick Resources", Items: []string{
		"**Find a FertilityCare Practitioner**: for personalized instruction and support, connect with a certified practitioner in your area.",
		"**Official CrMS Resources**: visit creightonmodel.com for official information and research about the Creighton Model.",
		"**NaProTECHNOLOGY**: learn about reproductive health treatments that work with your natural cycles.",
	}}}
}

// IndexMarkdown lists every topic plus the resources, for the CLI.
func IndexMarkdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Education Hub\n\n%s\n\n", Welcome())
	for _, t := range topics {
		fmt.Fprintf(&b, "- **%s** (`%s`): %s\n", t.Title, t.ID, t.Description)
	}
	for _, s := range Resources() {
		fmt.Fprintf(&b, "\n## %s\n\n", s.Title)
		for _, it := range s.Items {
			fmt.Fprintf(&b, "- %s\n", it)
		}
	}
	return b.String()
}
