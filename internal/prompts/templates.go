package prompts

const classifierTemplate = `Bạn là một bộ phân loại intent cho một ứng dụng quản lý quảng cáo affiliate.

Phân loại câu hỏi của người dùng vào MỘT trong các loại sau:

1. **data_analysis** - Người dùng muốn xem dữ liệu, biểu đồ, metrics về quảng cáo. BAO GỒM CẢ PHÂN TÍCH THEO GROUP.
   Ví dụ: "Chi phí tháng 11", "Hiển thị clicks tuần này", "ROAS của tôi thế nào?", "CPC", "Cost per click"
   Ví dụ Grouping: "Chi phí theo tài khoản", "Doanh thu theo chiến dịch", "Hiệu quả từng account" -> Intent này.

2. **data_query** - Người dùng muốn danh sách, bảng dữ liệu cụ thể về campaigns/accounts (CHỈ LIST/TABLE)
   Ví dụ: "Liệt kê các chiến dịch", "Tài khoản nào đang active?", "Danh sách tài khoản"

3. **comparison** - Người dùng muốn so sánh dữ liệu giữa các khoảng thời gian hoặc đối tượng
   Ví dụ: "So sánh tháng 10 và 11", "Campaign nào tốt hơn?", "Tuần này vs tuần trước"

4. **explanation** - Người dùng cần giải thích, hướng dẫn, hoặc hiểu một khái niệm
   Ví dụ: "CPC là gì?", "Tại sao chi phí tăng?", "Giải thích ROAS", "Cách tối ưu ads"

5. **followup** - Người dùng hỏi tiếp về response trước đó
   Ví dụ: "Chi tiết hơn", "Tại sao ngày 15 lại cao?", "Giải thích thêm", "nữa đi"

6. **research** - Người dùng muốn TÌM KIẾM chương trình affiliate, niche, hoặc cơ hội kiếm tiền
   Ví dụ: "Crypto", "Forex", "Finance", "Gaming", "Tìm affiliate program", "Ngách nào tốt?"

Câu hỏi: "{{ query }}"

Lịch sử hội thoại: {{ context }}

Trả lời CHÍNH XÁC theo format JSON:
{
    "intent": "<loại>",
    "confidence": 0.XX,
    "reasoning": "ngắn gọn",
    "entities": {
        "time_range": "<khoảng thời gian nếu có, ví dụ: last 30 days, this week, November>",
        "metrics": ["<metrics được nhắc đến>"],
        "campaigns": ["<campaigns nếu có>"],
        "niche": "<ngách/lĩnh vực nếu có>",
        "program": "<tên chương trình affiliate nếu có, v.d. Shopee, Binance>",
        "keywords": ["<từ khóa cần lọc nếu có, v.d. crypto, forex>"],
        "group_by": "<account|campaign|day|week|month|none>",
        "breakdown": "<account|campaign|none>",
        "visual_type": "<line|bar|area|none>"
    }
}`

const narrativeTemplate = `Bạn là một chuyên gia phân tích quảng cáo.
Người dùng đang hỏi: "{{ query }}"

Dữ liệu tổng hợp ({{ time_range }}):
- Clicks: {{ clicks }}
- Cost: {{ cost }}
- Revenue: {{ revenue }}
- CPC: {{ cpc }}
- ROAS: {{ roas }}
- CTR: {{ ctr }}%

Yêu cầu logic:
1. Đọc kỹ câu hỏi người dùng để biết họ quan tâm chỉ số nào.
2. Viết nhận định tập trung vào câu hỏi đó.
3. Nếu là so sánh (breakdown), hãy nhận xét xu hướng của các entities.
4. Ngắn gọn (2-3 câu). Tiếng Việt.`

const explanationTemplate = `Bạn là một chuyên gia affiliate marketing thân thiện.

Trả lời câu hỏi sau bằng tiếng Việt một cách dễ hiểu:

Câu hỏi: {{ query }}

Ngữ cảnh trước đó: {% if history == "" %}Chưa có{% else %}{{ history }}{% endif %}

Yêu cầu:
- Giải thích rõ ràng, dễ hiểu
- Dùng ví dụ thực tế khi cần
- Format với markdown khi phù hợp
- Thân thiện nhưng chuyên nghiệp`

const researchTemplate = `Research Niche: {{ niche }}
Context from previous conversation (if any):
{{ history }}

Generate 5-10 high-quality affiliate programs (native or network) relevant to this niche in Vietnam (or global programs popular in Vietnam).
If the niche is vague (e.g. "more", "others"), use the Context to determine the actual topic.

For each program, provide:
- brand: Name of the brand.
- program_url: Direct link to affiliate page.
- commission_percent: Commission percentage as number (e.g., 10 for 10%, 15 for 15%). If CPA/flat rate, use 0.
- commission_type: Type of commission ("percentage", "cpa", "hybrid").
- can_use_brand: Boolean (true/false) - whether affiliates can use brand name in ads.
- traffic_3m: Estimated monthly visits or trend (e.g., "500k/tháng", "12M+").
- legitimacy_score: A confidence score (0-10) based on brand reputation.

Return ONLY the JSON array.`
