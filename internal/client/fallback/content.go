package fallback

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/divyadrishti/internal/client/models"
)

func Kundali(name string, l Lang) models.KundaliResult {
	analysis := pick(l,
		fmt.Sprintf("**Kundali Analysis for %s (Offline Mode)**\n\n"+
			"**1. Personality:** You are a determined individual with strong leadership qualities indicated by the Sun's position.\n\n"+
			"**2. Career:** Saturn suggests success through hard work and discipline. Stability is indicated.\n\n"+
			"**3. Relationships:** Venus in your chart suggests a harmonious family life.", name),
		fmt.Sprintf("**%s की कुंडली विश्लेषण (AI सर्वर व्यस्त - ऑफलाइन मोड)**\n\n"+
			"**1. व्यक्तित्व:** आप एक दृढ़ निश्चय वाले व्यक्ति हैं। सूर्य की स्थिति आपके नेतृत्व गुणों को दर्शाती है।\n\n"+
			"**2. करियर:** आने वाला समय करियर में स्थिरता लाएगा। शनि का प्रभाव कड़ी मेहनत का फल देगा।\n\n"+
			"**3. संबंध:** शुक्र की स्थिति बताती है कि पारिवारिक जीवन सुखमय रहेगा।", name),
	)
	return models.KundaliResult{
		Analysis: analysis,
		RawData: models.KundaliData{
			Lagna:     "Aries",
			MoonSign:  "Taurus",
			SunSign:   "Leo",
			Nakshatra: "Rohini",
			Houses: map[int][]string{
				1: {"Ma"}, 2: {"Ve"}, 3: {}, 4: {"Mo"},
				5: {"Su", "Me"}, 6: {"Ra"}, 7: {}, 8: {},
				9: {"Ju"}, 10: {"Sa"}, 11: {}, 12: {"Ke"},
			},
		},
	}
}

func Match(l Lang) models.MatchResult {
	g := func(en, hi string, score, max float64) models.GunaScore {
		return models.GunaScore{Area: pick(l, en, hi), Score: score, Max: max}
	}
	return models.MatchResult{
		Score: 24.5,
		Total: 36,
		Description: pick(l,
			"This match is favorable. Good compatibility is seen in mental and financial aspects. (Offline Mode)",
			"यह मिलान उत्तम है। ग्रह मैत्री और नाड़ी दोष परिहार के कारण वैवाहिक जीवन सुखमय रहने की संभावना है। (ऑफलाइन मोड)"),
		GunaMilan: []models.GunaScore{
			g("Varna", "वर्ण", 1, 1),
			g("Vashya", "वश्य", 2, 2),
			g("Tara", "तारा", 1.5, 3),
			g("Yoni", "योनि", 3, 4),
			g("Graha Maitri", "ग्रह मैत्री", 4, 5),
			g("Gana", "गण", 6, 6),
			g("Bhakoot", "भकूट", 0, 7),
			g("Nadi", "नाड़ी", 8, 8),
		},
	}
}

// Chat answers from a few keyword topics.
func Chat(message string, l Lang) string {
	msg := strings.ToLower(message)
	switch {
	case strings.Contains(msg, "job"), strings.Contains(msg, "career"):
		return pick(l, "Hard work will pay off in career.", "करियर में मेहनत का फल मिलेगा।")
	case strings.Contains(msg, "marriage"), strings.Contains(msg, "love"):
		return pick(l, "Favorable time for relationships.", "रिश्तों के लिए समय अनुकूल है।")
	case strings.Contains(msg, "money"):
		return pick(l, "Financial situation will improve.", "आर्थिक स्थिति सुधरेगी।")
	}
	return pick(l,
		"I am currently in offline mode. Please try again later.",
		"मैं अभी ऑफलाइन मोड में हूँ। कृपया बाद में प्रयास करें।")
}

// Panchang fills missing date and location with today and a generic place.
func Panchang(req models.PanchangRequest, l Lang, today time.Time) models.Panchang {
	date := req.Date
	if date == "" {
		date = today.Format(time.DateOnly)
	}
	location := req.Location
	if location == "" {
		location = pick(l, "Your Location", "आपका स्थान")
	}
	return models.Panchang{
		Date:      date,
		Location:  location,
		Tithi:     pick(l, "Shukla Paksha, Dwitiya (Offline)", "शुक्ल पक्ष, द्वितीया (ऑफलाइन)"),
		Nakshatra: pick(l, "Rohini (Offline)", "रोहिणी (ऑफलाइन)"),
		Sunrise:   "06:00",
		Sunset:    "18:30",
		Summary: pick(l,
			"Offline mode: Today's panchang is generally favorable. A moderately good time for new beginnings.",
			"ऑफलाइन मोड: आज का पंचांग सामान्य रूप से शुभ है। नए काम की शुरुआत के लिए मध्यम रूप से अनुकूल समय।"),
	}
}

func Horoscope(sign, timeframe string, l Lang) string {
	if sign == "" {
		sign = pick(l, "your sign", "आपकी राशि")
	}
	if timeframe == "" {
		timeframe = "daily"
	}
	return pick(l,
		fmt.Sprintf("**%s horoscope for %s (Offline Mode)**\n\n"+
			"The planets favour steady effort. Avoid hasty decisions in money matters and give time to family.", titleCase(timeframe), sign),
		fmt.Sprintf("**%s राशिफल: %s (ऑफलाइन मोड)**\n\n"+
			"ग्रह स्थिर प्रयासों के पक्ष में हैं। धन संबंधी निर्णयों में जल्दबाज़ी न करें और परिवार को समय दें।", hindiTimeframe(timeframe), sign))
}

var hindiTimeframes = map[string]string{
	"daily":   "दैनिक",
	"weekly":  "साप्ताहिक",
	"monthly": "मासिक",
	"yearly":  "वार्षिक",
}

// hindiTimeframe names a known timeframe in Hindi; others are shown as given.
func hindiTimeframe(timeframe string) string {
	if hi, ok := hindiTimeframes[strings.ToLower(timeframe)]; ok {
		return hi
	}
	return timeframe
}

func Prediction(kind models.PredictionKind, input string, l Lang) string {
	switch kind {
	case models.PredictionRemedies:
		return pick(l,
			"**Remedies (Offline Mode)**\n\nChant the Hanuman Chalisa on Tuesdays, offer water to the Sun at sunrise and donate food on Saturdays.",
			"**उपाय (ऑफलाइन मोड)**\n\nमंगलवार को हनुमान चालीसा का पाठ करें, सूर्योदय के समय सूर्य को जल अर्पित करें और शनिवार को अन्न दान करें।")
	case models.PredictionNumerology:
		n := digitRoot(input)
		return pick(l,
			fmt.Sprintf("**Numerology (Offline Mode)**\n\nYour number is %d. It points to a practical nature and slow but lasting progress.", n),
			fmt.Sprintf("**अंक ज्योतिष (ऑफलाइन मोड)**\n\nआपका अंक %d है। यह व्यावहारिक स्वभाव और धीमी पर स्थायी प्रगति का संकेत देता है।", n))
	case models.PredictionFestival:
		return pick(l,
			"**Festivals (Offline Mode)**\n\nFestival dates need the online service. Please check again when you are connected.",
			"**त्योहार (ऑफलाइन मोड)**\n\nत्योहारों की तिथियों के लिए ऑनलाइन सेवा आवश्यक है। कृपया कनेक्ट होने पर फिर देखें।")
	case models.PredictionBabyNames:
		return pick(l,
			"**Baby Names (Offline Mode)**\n\nAarav, Vihaan, Ishaan, Anaya, Diya, Saanvi",
			"**शिशु नाम (ऑफलाइन मोड)**\n\nआरव, विहान, ईशान, अनाया, दिया, सान्वी")
	}
	return Chat(input, l)
}

// digitRoot reduces the letters and digits of s to a single digit 1..9
// with the Pythagorean table (a=1 ... i=9, j=1 ...).
func digitRoot(s string) int {
	sum := 0
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z':
			sum += int(r-'a')%9 + 1
		case r >= '0' && r <= '9':
			sum += int(r - '0')
		}
	}
	if sum == 0 {
		return 9
	}
	return (sum-1)%9 + 1
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
