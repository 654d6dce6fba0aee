package calculators

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/powerguard/autonomy-planner/internal/autonomy"
)

const (
	adviceChargeCycle = "Розрахунок базується на 'розумному' циклі: повна зарядка -> використання до розрядки -> повторна зарядка."
	advicePartialDrain = "Користуйтесь пристроями від вбудованої батареї до 10-20%, потім підключайте павербанк — " +
		"це мінімізує втрати на фонове живлення плати павербанка."
	adviceDCRouter = "При великій ємності джерел намагайтесь живити роутер та ONU через DC-кабелі 12В замість розетки 220В — " +
		"це додасть 15-20% часу роботи."
	warningPCOnPowerBanks = "Комп'ютер підключено лише до павербанків: вони не розраховані на тривале навантаження такої потужності. " +
		"Використовуйте зарядну станцію або ДБЖ."
)

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

const overloadPrefix = "Ризик перевантаження джерела"

func overloadWarning(s autonomy.PowerSource, peak float64) string {
	return fmt.Sprintf(overloadPrefix+" %q (Пік %sВт > Макс %sВт).",
		s.Label(), formatNumber(peak), formatNumber(s.MaxOutputW))
}

// CountOverloads returns how many of the warnings report an overloaded source.
func CountOverloads(warnings []string) int {
	n := 0
	for _, w := range warnings {
		if strings.HasPrefix(w, overloadPrefix) {
			n++
		}
	}
	return n
}

func shortfallAdvice(total, hoursPerDay float64) string {
	return fmt.Sprintf("Запасу енергії вистачить лише на %.1f год із %s год на добу. "+
		"Додайте джерело живлення або зменште навантаження.", total, formatNumber(hoursPerDay))
}

// onlyPowerBanks reports whether every source in the plan is a power bank.
func onlyPowerBanks(sources []autonomy.PowerSource) bool {
	if len(sources) == 0 {
		return false
	}
	for _, s := range sources {
		if s.Type != autonomy.SourceTypePowerBank {
			return false
		}
	}
	return true
}

func anyPC(devices []autonomy.Device) bool {
	for _, d := range devices {
		if d.IsPCClass() {
			return true
		}
	}
	return false
}

// recommendations returns the computed advice followed by the static notes.
func recommendations(total, bankWh float64, sc autonomy.Scenario, deviceCount int) []string {
	recs := []string{}
	if deviceCount > 0 && total < sc.HoursPerDay {
		recs = append(recs, shortfallAdvice(total, sc.HoursPerDay))
	}
	recs = append(recs, adviceChargeCycle, advicePartialDrain)
	if bankWh > LargePoolThresholdWh {
		recs = append(recs, adviceDCRouter)
	}
	return recs
}
