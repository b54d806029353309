package report

// disclaimerSection is one bilingual block of the report boilerplate. Each
// paragraph pair holds the English passage and its Arabic rendition.
type disclaimerSection struct {
	titleEN string
	titleAR string
	paras   [][2]string
}

var disclaimerSections = []disclaimerSection{
	{
		titleEN: "Purpose of the Report",
		titleAR: "الغرض من التقرير",
		paras: [][2]string{
			{
				"This report documents the visual condition of the property at the date and time of the inspection. Its purpose is to identify observable defects in the inspected areas and to record their condition with supporting photographs where available.",
				"يوثق هذا التقرير الحالة الظاهرية للعقار في تاريخ ووقت الفحص. والغرض منه هو تحديد العيوب الظاهرة في المناطق التي تم فحصها وتسجيل حالتها مع صور داعمة حيثما توفرت.",
			},
			{
				"The report is prepared for the exclusive use of the client named herein and may not be relied upon by any third party without prior written consent.",
				"تم إعداد هذا التقرير للاستخدام الحصري للعميل المذكور فيه، ولا يجوز لأي طرف ثالث الاعتماد عليه دون موافقة خطية مسبقة.",
			},
		},
	},
	{
		titleEN: "Scope and Limitations",
		titleAR: "النطاق والقيود",
		paras: [][2]string{
			{
				"The inspection is visual and non-invasive. No part of the structure, finishes, or installations was dismantled, and concealed areas such as wall cavities, underground services, and enclosed voids are excluded. The findings reflect conditions accessible and visible on the day of the inspection only.",
				"الفحص بصري وغير متلف. لم يتم تفكيك أي جزء من الهيكل أو التشطيبات أو التمديدات، وتستثنى المناطق المخفية مثل فراغات الجدران والخدمات تحت الأرض والفراغات المغلقة. تعكس النتائج الحالة الظاهرة والممكن الوصول إليها في يوم الفحص فقط.",
			},
			{
				"The inspection does not constitute a structural engineering assessment, a warranty, or a guarantee of future performance of any element of the property.",
				"لا يشكل الفحص تقييماً هندسياً إنشائياً ولا ضماناً أو كفالة للأداء المستقبلي لأي عنصر من عناصر العقار.",
			},
		},
	},
	{
		titleEN: "Methodology",
		titleAR: "منهجية الفحص",
		paras: [][2]string{
			{
				"Each area of the property is examined against a standard checklist covering structural elements, plumbing, electrical installations, air conditioning, doors and windows, and finishing works. Every checklist item is graded as passing, failing, or not applicable, and failing items are described with their location and observed condition.",
				"يتم فحص كل منطقة من العقار وفق قائمة تدقيق معيارية تشمل العناصر الإنشائية والسباكة والتمديدات الكهربائية والتكييف والأبواب والنوافذ وأعمال التشطيب. يُقيَّم كل بند بأنه مطابق أو غير مطابق أو غير منطبق، وتوصف البنود غير المطابقة مع موقعها وحالتها الملاحظة.",
			},
		},
	},
	{
		titleEN: "Client Responsibilities",
		titleAR: "مسؤوليات العميل",
		paras: [][2]string{
			{
				"The client is advised to review all reported defects with a qualified contractor before undertaking remedial works, and to re-inspect any repaired items upon completion. Defects may develop or become visible after the inspection date; such changes fall outside the scope of this report.",
				"يُنصح العميل بمراجعة جميع العيوب المذكورة مع مقاول مؤهل قبل البدء بأعمال الإصلاح، وبإعادة فحص أي بنود تم إصلاحها بعد إتمامها. قد تظهر عيوب أو تتطور بعد تاريخ الفحص؛ وتقع هذه التغييرات خارج نطاق هذا التقرير.",
			},
		},
	},
	{
		titleEN: "Confidentiality",
		titleAR: "السرية",
		paras: [][2]string{
			{
				"The contents of this report, including all photographs, are confidential. Reproduction or distribution of the report in whole or in part without the written permission of the issuing company is prohibited.",
				"محتويات هذا التقرير، بما في ذلك جميع الصور، سرية. يُحظر نسخ التقرير أو توزيعه كلياً أو جزئياً دون إذن خطي من الشركة المصدرة.",
			},
		},
	},
}

// gradingRows describes the meaning of each item grade, bilingually.
var gradingRows = [][3]string{
	{"PASS", "The item is in acceptable condition with no visible defect.", "البند بحالة مقبولة دون عيب ظاهر."},
	{"FAIL", "A visible defect was observed; details and photographs are recorded in the findings.", "لوحظ عيب ظاهر؛ التفاصيل والصور مسجلة في النتائج."},
	{"N/A", "The item does not apply to the inspected area or could not be accessed.", "البند لا ينطبق على المنطقة المفحوصة أو تعذر الوصول إليه."},
}

// disclaimer renders the boilerplate sections, the grading scale, and the
// signature block that open every inspection report.
func (d *doc) disclaimer() {
	for _, s := range disclaimerSections {
		d.sectionHeader(s.titleEN, s.titleAR)
		for _, p := range s.paras {
			d.bilingualParagraph(p[0], p[1], 9.5)
		}
		d.pdf.SetY(d.pdf.GetY() + sectionGap)
	}
	d.gradingScale()
	d.signatureBlock()
}

// gradingScale draws the three-row legend explaining item grades.
func (d *doc) gradingScale() {
	d.sectionHeader("Grading Scale", "مقياس التقييم")

	const gradeW = 24.0
	colW := (contentWidth - gradeW) / 2
	lh := lineHeight(9)

	for i, row := range gradingRows {
		d.pdf.SetFont(d.latin, "", 9)
		enH := float64(len(d.pdf.SplitText(row[1], colW-4))) * lh
		d.pdf.SetFont(d.arabic, "", 9)
		arH := float64(len(d.pdf.SplitText(row[2], colW-4))) * lh
		h := max(max(enH, arH)+3, 9)
		d.ensureSpace(h)
		y := d.pdf.GetY()

		if i%2 == 1 {
			d.pdf.SetFillColor(244, 246, 249)
			d.pdf.Rect(marginLeft, y, contentWidth, h, "F")
		}
		d.pdf.SetDrawColor(colorBorder.r, colorBorder.g, colorBorder.b)
		d.pdf.Rect(marginLeft, y, contentWidth, h, "D")

		d.pdf.SetFont(d.latin, "B", 9)
		d.pdf.SetXY(marginLeft, y)
		d.pdf.CellFormat(gradeW, h, row[0], "", 0, "C", false, 0, "")

		d.pdf.SetFont(d.latin, "", 9)
		d.pdf.SetXY(marginLeft+gradeW+2, y+1.5)
		d.pdf.MultiCell(colW-4, lh, row[1], "", "L", false)

		d.pdf.SetFont(d.arabic, "", 9)
		d.pdf.SetXY(marginLeft+gradeW+colW+2, y+1.5)
		d.pdf.RTL()
		d.pdf.MultiCell(colW-4, lh, row[2], "", "R", false)
		d.pdf.LTR()

		d.pdf.SetXY(marginLeft, y+h)
	}
	d.pdf.SetY(d.pdf.GetY() + sectionGap)
}

// signatureBlock draws bilingual inspector signature and date lines.
func (d *doc) signatureBlock() {
	const h = 26.0
	d.ensureSpace(h)
	y := d.pdf.GetY()
	colW := (contentWidth - columnGap) / 2
	lh := lineHeight(10)

	d.pdf.SetFont(d.latin, "", 10)
	d.pdf.SetXY(marginLeft, y)
	d.pdf.CellFormat(colW, lh, "Inspector Signature: ______________________", "", 0, "L", false, 0, "")
	d.pdf.SetXY(marginLeft, y+10)
	d.pdf.CellFormat(colW, lh, "Date: ______________________", "", 0, "L", false, 0, "")

	d.pdf.SetFont(d.arabic, "", 10)
	d.pdf.RTL()
	d.pdf.SetXY(marginLeft+colW+columnGap, y)
	d.pdf.CellFormat(colW, lh, "توقيع الفاحص: ______________________", "", 0, "R", false, 0, "")
	d.pdf.SetXY(marginLeft+colW+columnGap, y+10)
	d.pdf.CellFormat(colW, lh, "التاريخ: ______________________", "", 0, "R", false, 0, "")
	d.pdf.LTR()

	d.pdf.SetXY(marginLeft, y+h)
}
